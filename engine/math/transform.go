package math

// NewTransform builds a placement from its scale, rotation (degrees per axis)
// and translation.
func NewTransform(scale, rotation, translation Vec3) Transform {
	return Transform{
		Scale:       scale,
		Rotation:    rotation,
		Translation: translation,
	}
}

// TransformCreate returns the identity placement.
func TransformCreate() Transform {
	return Transform{Scale: NewVec3One()}
}

// WithScale returns a copy of t with the scale replaced.
func (t Transform) WithScale(scale Vec3) Transform {
	t.Scale = scale
	return t
}

// Translated returns a copy of t moved by delta.
func (t Transform) Translated(delta Vec3) Transform {
	t.Translation = t.Translation.Add(delta)
	return t
}

// Rotated returns a copy of t with delta degrees added to each axis.
func (t Transform) Rotated(delta Vec3) Transform {
	t.Rotation = t.Rotation.Add(delta)
	return t
}

// Model returns the model matrix: scale first, then rotation about x, y and
// z in that order, then translation.
func (t Transform) Model() Mat4 {
	s := NewMat4Scale(t.Scale)
	r := NewMat4EulerXYZ(DegToRad(t.Rotation.X), DegToRad(t.Rotation.Y), DegToRad(t.Rotation.Z))
	return s.Mul(r).Mul(NewMat4Translation(t.Translation))
}

func (t Transform) Compare(other Transform, tolerance float32) bool {
	return t.Scale.Compare(other.Scale, tolerance) &&
		t.Rotation.Compare(other.Rotation, tolerance) &&
		t.Translation.Compare(other.Translation, tolerance)
}
