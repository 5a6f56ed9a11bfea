package opengl

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/spaghettifunk/gondola/engine/renderer/metadata"
)

/**
 * @brief Max number of simultaneously uploaded geometries.
 */
const OPENGL_MAX_GEOMETRY_COUNT uint32 = 256

/**
 * @brief Internal buffer state for one uploaded geometry.
 */
type opengl_geometry_data struct {
	/** @brief The unique geometry identifier. */
	ID uint32
	/** @brief The geometry generation. Incremented every time the geometry data changes. */
	Generation uint32
	/** @brief The vertex array object capturing the attribute layout. */
	VAO uint32
	/** @brief One buffer per vertex attribute, in bind order. */
	AttributeBuffers []uint32
	/** @brief The element buffer the indices live in. */
	IndexBuffer uint32
	/** @brief The number of indices to draw. */
	IndexCount uint32
}

// CreateGeometry uploads the configured vertex attributes and indices and
// binds the geometry to a free internal slot.
func (vr *OpenGLRenderer) CreateGeometry(geometry *metadata.Geometry, config *metadata.GeometryConfig) error {
	if len(config.Positions) == 0 {
		return fmt.Errorf("geometry %s has no vertex positions", config.Name)
	}

	id := metadata.InvalidID
	for i := uint32(0); i < OPENGL_MAX_GEOMETRY_COUNT; i++ {
		if vr.context.Geometries[i].ID == metadata.InvalidID {
			id = i
			break
		}
	}
	if id == metadata.InvalidID {
		return fmt.Errorf("no free slot to upload geometry %s, adjust OPENGL_MAX_GEOMETRY_COUNT", config.Name)
	}

	gd := &vr.context.Geometries[id]
	gd.ID = id
	vr.uploadGeometry(gd, config)

	geometry.InternalID = id
	geometry.IndexCount = gd.IndexCount
	return nil
}

// UpdateGeometry replaces the buffers of an already uploaded geometry,
// keeping its internal slot. Used for rebuilt text quads.
func (vr *OpenGLRenderer) UpdateGeometry(geometry *metadata.Geometry, config *metadata.GeometryConfig) error {
	if geometry.InternalID == metadata.InvalidID {
		return fmt.Errorf("geometry %s was never uploaded", geometry.Name)
	}
	gd := &vr.context.Geometries[geometry.InternalID]
	vr.releaseGeometryBuffers(gd)
	vr.uploadGeometry(gd, config)

	gd.Generation++
	geometry.Generation++
	geometry.IndexCount = gd.IndexCount
	return nil
}

func (vr *OpenGLRenderer) DestroyGeometry(geometry *metadata.Geometry) {
	if geometry.InternalID == metadata.InvalidID {
		return
	}
	gd := &vr.context.Geometries[geometry.InternalID]
	vr.releaseGeometryBuffers(gd)
	gd.ID = metadata.InvalidID
	gd.Generation = 0
	geometry.InternalID = metadata.InvalidID
}

// Attribute slots follow declaration order in the shaders: position
// first, texture coordinates when present, then normals. Normals are
// normalized on upload. Colour data stays CPU side, no pipeline reads it.
func (vr *OpenGLRenderer) uploadGeometry(gd *opengl_geometry_data, config *metadata.GeometryConfig) {
	gl.GenVertexArrays(1, &gd.VAO)
	gl.BindVertexArray(gd.VAO)

	attribute := uint32(0)
	uploadAttribute := func(data []float32, size int32, normalized bool) {
		var vbo uint32
		gl.GenBuffers(1, &vbo)
		gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
		gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, gl.Ptr(data), gl.STATIC_DRAW)
		gl.EnableVertexAttribArray(attribute)
		gl.VertexAttribPointer(attribute, size, gl.FLOAT, normalized, 0, gl.PtrOffset(0))
		gd.AttributeBuffers = append(gd.AttributeBuffers, vbo)
		attribute++
	}

	uploadAttribute(config.Positions, 3, false)
	if len(config.Texcoords) > 0 {
		uploadAttribute(config.Texcoords, 2, false)
	}
	if len(config.Normals) > 0 {
		uploadAttribute(config.Normals, 3, true)
	}

	gl.GenBuffers(1, &gd.IndexBuffer)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, gd.IndexBuffer)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(config.Indices)*4, gl.Ptr(config.Indices), gl.STATIC_DRAW)

	gl.BindVertexArray(0)

	gd.IndexCount = uint32(len(config.Indices))
}

func (vr *OpenGLRenderer) releaseGeometryBuffers(gd *opengl_geometry_data) {
	if len(gd.AttributeBuffers) > 0 {
		gl.DeleteBuffers(int32(len(gd.AttributeBuffers)), &gd.AttributeBuffers[0])
	}
	if gd.IndexBuffer != 0 {
		gl.DeleteBuffers(1, &gd.IndexBuffer)
	}
	if gd.VAO != 0 {
		gl.DeleteVertexArrays(1, &gd.VAO)
	}
	gd.AttributeBuffers = nil
	gd.IndexBuffer = 0
	gd.VAO = 0
	gd.IndexCount = 0
}
