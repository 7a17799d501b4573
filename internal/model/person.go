package model

// Person is a Star Wars character. Only Name and Gender are required; the
// other fields are free-form strings stored as given ("172", "unknown", ...).
type Person struct {
	ID     int64
	Name   string
	Height string
	Weight string
	Gender string
}

// Planet is a Star Wars planet. Only Name is required.
type Planet struct {
	ID        int64
	Name      string
	Climate   string
	Terrain   string
	Resources string
}
