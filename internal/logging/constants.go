package logging

// Field names shared by every component so import logs can be filtered the
// same way regardless of which stage emitted them.
const (
	FieldFile        = "file_path"
	FieldSchema      = "schema"
	FieldSection     = "section"
	FieldPairs       = "pairs"
	FieldAmbients    = "ambients"
	FieldCategories  = "categories"
	FieldItems       = "items"
	FieldOperation   = "operation"
	FieldStatus      = "status"
	FieldError       = "error"
	FieldDuration    = "duration_ms"
	FieldCount       = "count"
	FieldDelimiter   = "delimiter"
	FieldInputFile   = "input_file"
	FieldOutputFile  = "output_file"
	FieldBudgetID    = "budget_id"
	FieldEnvironment = "environment"
)
