package opengl

import (
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/spaghettifunk/stilllife/engine/math"
	"github.com/spaghettifunk/stilllife/engine/renderer/metadata"
)

/** @brief Attribute locations shared by every builtin program. */
const (
	attribPosition uint32 = 0
	attribNormal   uint32 = 1
	attribTexcoord uint32 = 2
)

/** @brief The buffer objects behind one geometry. */
type geometryBuffers struct {
	vao        uint32
	vbo        uint32
	ebo        uint32
	indexCount int32
}

func (r *OpenGLRenderer) GeometryCreate(geometry *metadata.Geometry, vertices []math.Vertex3D, indices []uint32) error {
	b := &geometryBuffers{indexCount: int32(len(indices))}

	gl.GenVertexArrays(1, &b.vao)
	gl.BindVertexArray(b.vao)

	stride := int32(unsafe.Sizeof(math.Vertex3D{}))

	gl.GenBuffers(1, &b.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*int(stride), gl.Ptr(vertices), gl.STATIC_DRAW)

	gl.GenBuffers(1, &b.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, b.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*4, gl.Ptr(indices), gl.STATIC_DRAW)

	gl.EnableVertexAttribArray(attribPosition)
	gl.VertexAttribPointerWithOffset(attribPosition, 3, gl.FLOAT, false, stride, unsafe.Offsetof(math.Vertex3D{}.Position))
	gl.EnableVertexAttribArray(attribNormal)
	gl.VertexAttribPointerWithOffset(attribNormal, 3, gl.FLOAT, false, stride, unsafe.Offsetof(math.Vertex3D{}.Normal))
	gl.EnableVertexAttribArray(attribTexcoord)
	gl.VertexAttribPointerWithOffset(attribTexcoord, 2, gl.FLOAT, false, stride, unsafe.Offsetof(math.Vertex3D{}.Texcoord))

	gl.BindVertexArray(0)

	if err := checkError("geometry create"); err != nil {
		b.release()
		return err
	}
	geometry.ID = b.vao
	geometry.InternalData = b
	return nil
}

func (b *geometryBuffers) release() {
	gl.DeleteBuffers(1, &b.ebo)
	gl.DeleteBuffers(1, &b.vbo)
	gl.DeleteVertexArrays(1, &b.vao)
}

func (r *OpenGLRenderer) GeometryDestroy(geometry *metadata.Geometry) error {
	if b, ok := geometry.InternalData.(*geometryBuffers); ok {
		b.release()
	}
	geometry.ID = 0
	geometry.InternalData = nil
	return nil
}

func (r *OpenGLRenderer) GeometryDraw(geometry *metadata.Geometry) error {
	b, ok := geometry.InternalData.(*geometryBuffers)
	if !ok {
		return nil
	}
	gl.BindVertexArray(b.vao)
	gl.DrawElementsWithOffset(gl.TRIANGLES, b.indexCount, gl.UNSIGNED_INT, 0)
	gl.BindVertexArray(0)
	return nil
}
