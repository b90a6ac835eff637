package ixf

// Fuzz is a go-fuzz entry point exercising the full decode path over
// arbitrary bytes (adapted from the teacher's PE fuzz harness).
func Fuzz(data []byte) int {
	dec := NewBytes(data, "", Options{})
	rows := 0
	err := dec.Decode(&Sink{
		OnRow: func(idx int, row Row) { rows++ },
	})
	if err != nil {
		return 0
	}
	if rows > 0 {
		return 1
	}
	return 0
}
