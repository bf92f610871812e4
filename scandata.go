package mdacache

// ScanData is the parsed representation the MDA loader produces for one scan
// file: file metadata, the positioner/detector field table, which columns to
// plot first, and the PV name list. The cache never inspects it; it is the
// conventional payload type the viewer binds as V.
type ScanData struct {
	Metadata map[string]any
	Fields   []ScanField
	FirstPos int // index of the first positioner column
	FirstDet int // index of the first detector column
	PVs      []string
	Rank     int
	Dim2     *ScanDim // optional secondary dimension, nil for 1-D scans
}

// ScanField is one positioner or detector column.
type ScanField struct {
	Name   string
	Desc   string
	Unit   string
	Values []float64
}

// ScanDim holds the secondary-dimension block of a multidimensional scan.
type ScanDim struct {
	Points int
	Fields []ScanField
}
