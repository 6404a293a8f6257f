package querypostgresql

// queryPlan is the statement a dataset spec compiles to.
type queryPlan struct {
	SQL  string
	Args []interface{}
}
