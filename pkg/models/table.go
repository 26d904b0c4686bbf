package models

// ColumnType is the closed set of semantic types a column can carry through
// a pipeline run. Readers classify each column exactly once at read time;
// writers trust the classification instead of re-inspecting values.
type ColumnType int

const (
	TypeText ColumnType = iota
	TypeInteger
	TypeFloat
	TypeTimestamp
)

func (t ColumnType) String() string {
	switch t {
	case TypeInteger:
		return "integer"
	case TypeFloat:
		return "float"
	case TypeTimestamp:
		return "timestamp"
	default:
		return "text"
	}
}

// TypedTable is the in-memory form of a table moving through a pipeline:
// ordered column names, a semantic type per column, and rows keyed by
// column name. It lives only for the duration of a single run.
type TypedTable struct {
	Columns []string
	Types   map[string]ColumnType
	Rows    []map[string]interface{}
}

func NewTypedTable(columns []string) *TypedTable {
	return &TypedTable{
		Columns: columns,
		Types:   make(map[string]ColumnType, len(columns)),
	}
}

func (t *TypedTable) NumRows() int {
	return len(t.Rows)
}

// Type returns the classified type of a column, defaulting to text for
// columns that were never classified.
func (t *TypedTable) Type(column string) ColumnType {
	if typ, ok := t.Types[column]; ok {
		return typ
	}
	return TypeText
}

// AddColumn appends a new column holding the same value in every row.
func (t *TypedTable) AddColumn(name string, typ ColumnType, value interface{}) {
	t.Columns = append(t.Columns, name)
	t.Types[name] = typ
	for _, row := range t.Rows {
		row[name] = value
	}
}
