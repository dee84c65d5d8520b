package query

var typeNames = map[string]string{
	"VARCHAR":  "str",
	"INTEGER":  "i32",
	"UINTEGER": "u32",
	"TINYINT":  "i8",
	"UTINYINT": "u8",
	"DOUBLE":   "f64",
	"REAL":     "f32",
	"BIGINT":   "i64",
	"UBIGINT":  "u64",
}

// NormalizeType maps an engine type name to its short form. Unknown names are
// returned unchanged.
func NormalizeType(engineType string) string {
	if short, ok := typeNames[engineType]; ok {
		return short
	}
	return engineType
}

type Column struct {
	Name       string
	Type       string
	EngineType string
}

// Schema lists columns in file order.
type Schema struct {
	Columns []Column
}

func NewSchema(names, engineTypes []string) Schema {
	columns := make([]Column, 0, len(names))
	for i, name := range names {
		engineType := ""
		if i < len(engineTypes) {
			engineType = engineTypes[i]
		}
		columns = append(columns, Column{Name: name, Type: NormalizeType(engineType), EngineType: engineType})
	}
	return Schema{Columns: columns}
}

// Map returns column name to normalized type name.
func (s Schema) Map() map[string]string {
	out := make(map[string]string, len(s.Columns))
	for _, column := range s.Columns {
		out[column.Name] = column.Type
	}
	return out
}

func (s Schema) Names() []string {
	names := make([]string, 0, len(s.Columns))
	for _, column := range s.Columns {
		names = append(names, column.Name)
	}
	return names
}
