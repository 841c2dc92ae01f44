package models

// Product is a catalogue item. Products are created and changed only by the
// remote system; local rows are a disposable cache.
type Product struct {
	ID          int64
	Name        string
	Price       float64
	Description string
	Category    string
}
