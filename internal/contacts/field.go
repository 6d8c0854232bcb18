package contacts

// Field is a named scalar value. Two fields are equal when their values are.
type Field struct {
	value string
}

// NewField wraps value in a Field.
func NewField(value string) Field {
	return Field{value: value}
}

// Value returns the stored string.
func (f Field) Value() string {
	return f.value
}

// Set replaces the stored string.
func (f *Field) Set(value string) {
	f.value = value
}

// Equal reports value equality.
func (f Field) Equal(other Field) bool {
	return f.value == other.value
}

func (f Field) String() string {
	return f.value
}
