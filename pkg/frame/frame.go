package frame

// NumPlanes is the number of components in a planar frame (Y, Cb, Cr).
const NumPlanes = 3

// Decoded is a fully extracted frame. Its plane buffers are owned by the
// receiver and never alias decoder memory, so they may be retained beyond the
// emitting callback.
type Decoded struct {
	// Planes holds one buffer per component.
	Planes [NumPlanes][]byte
	// Strides holds the decoder-reported line size of each plane. A stride
	// may exceed the logical row width due to alignment padding.
	Strides [NumPlanes]int
	// Position is the frame's position in decode order, starting at 0.
	Position uint64
}

// I420PlaneSizes returns the byte size of each plane of an I420 frame with
// the given dimensions.
func I420PlaneSizes(width, height int) [NumPlanes]int {
	yi := width * height
	ci := width * height / 4
	return [NumPlanes]int{yi, ci, ci}
}

// I420Size returns the total byte size of a packed I420 frame.
func I420Size(width, height int) int {
	return width * height * 3 / 2
}
