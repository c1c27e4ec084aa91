package anim

// SwapYZ moves the source Z curve into the Y slot and the source Y curve into
// the Z slot. Keyframes move as a unit; their content is not touched.
func (c *CurveSet) SwapYZ() *CurveSet {
	if c == nil {
		return nil
	}
	return &CurveSet{X: c.X, Y: c.Z, Z: c.Y}
}
