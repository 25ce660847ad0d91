package event

type DataType string

const (
	BooleanType DataType = "BOOLEAN"
	LongType    DataType = "LONG"
	DoubleType  DataType = "DOUBLE"
	StringType  DataType = "STRING"
	JSONType    DataType = "JSON"
	UnknownType DataType = "UNKNOWN"
)
