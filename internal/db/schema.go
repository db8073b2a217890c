package db

// CasesTable is the name of the single table casedesk owns.
const CasesTable = "cases"

// Columns lists the cases table columns in their canonical order.
// The CSV export header uses the same names.
var Columns = []string{
	"Case_ID",
	"Trader_ID",
	"Case_Type",
	"Risk_Score",
	"Assigned_To",
	"Status",
	"Date_Flagged",
	"Comments",
}

// SchemaSQL creates the cases table. It is executed on every full-table
// replace, after the previous table has been dropped inside the same
// transaction. There are no migrations: the shape below is the schema.
//
// Case_ID carries no UNIQUE constraint; uniqueness is guaranteed by the
// generator and updates match every row sharing an ID.
const SchemaSQL = `
CREATE TABLE IF NOT EXISTS cases (
	Case_ID TEXT NOT NULL,
	Trader_ID INTEGER NOT NULL,
	Case_Type TEXT NOT NULL,
	Risk_Score INTEGER NOT NULL CHECK(Risk_Score BETWEEN 0 AND 100),
	Assigned_To TEXT NOT NULL,
	Status TEXT NOT NULL CHECK(Status IN ('Open', 'In Progress', 'Closed')),
	Date_Flagged TEXT NOT NULL,
	Comments TEXT NOT NULL DEFAULT '-'
);
`

// GetSchemaSQL returns the authoritative schema SQL for use by tests.
// Tests should use this instead of hardcoding their own schema to prevent drift.
func GetSchemaSQL() string {
	return SchemaSQL
}
