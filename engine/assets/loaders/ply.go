package loaders

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spaghettifunk/gondola/engine/core"
	"github.com/spaghettifunk/gondola/engine/resources"
)

type MeshLoader struct{}

// Canonical attribute slot for every property name a mesh file may
// declare. Texture coordinates appear as either u/v or s/t depending on
// the exporter, colours as single letters or full words.
var plyPropertyNames = map[string]string{
	"x":     "x",
	"y":     "y",
	"z":     "z",
	"nx":    "nx",
	"ny":    "ny",
	"nz":    "nz",
	"r":     "r",
	"g":     "g",
	"b":     "b",
	"red":   "r",
	"green": "g",
	"blue":  "b",
	"u":     "u",
	"v":     "v",
	"s":     "u",
	"t":     "v",
}

// ParseMesh parses an ascii PLY mesh. The header starts with the magic
// line, a format line and a comment line, followed by the vertex element
// declaration. The order of the property lines determines which value
// slot of each vertex data line feeds which attribute, so files may
// declare attributes in any order. Properties the file does not declare
// leave their attribute arrays zero filled. Faces carry a leading arity
// token which is discarded; the meshes supported here are triangulated,
// so every face contributes three indices.
func ParseMesh(name string, data []byte) (*resources.MeshData, error) {
	scanner := bufio.NewScanner(bytes.NewReader(data))
	readLine := func() (string, bool) {
		if scanner.Scan() {
			return scanner.Text(), true
		}
		return "", false
	}

	magic, ok := readLine()
	if !ok || strings.TrimSpace(magic) != "ply" {
		return nil, &core.FormatError{Asset: name, Reason: "missing ply magic line"}
	}
	// Format and comment lines carry nothing the parser needs.
	for i := 0; i < 2; i++ {
		if _, ok := readLine(); !ok {
			return nil, &core.FormatError{Asset: name, Reason: "header ended before the vertex element declaration"}
		}
	}

	line, ok := readLine()
	if !ok {
		return nil, &core.FormatError{Asset: name, Reason: "header ended before the vertex element declaration"}
	}
	fields := strings.Fields(line)
	if len(fields) < 3 || fields[0] != "element" || fields[1] != "vertex" {
		return nil, &core.FormatError{Asset: name, Reason: fmt.Sprintf("expected vertex element declaration, got %q", line)}
	}
	vertexCount, err := strconv.ParseUint(fields[2], 10, 32)
	if err != nil {
		return nil, &core.FormatError{Asset: name, Reason: fmt.Sprintf("invalid vertex count %q", fields[2])}
	}

	// Collect the ordered property slots until the face element begins.
	var slots []string
	var faceFields []string
	for {
		line, ok = readLine()
		if !ok {
			return nil, &core.FormatError{Asset: name, Reason: "header ended before the face element declaration"}
		}
		fields = strings.Fields(line)
		if len(fields) == 0 {
			return nil, &core.FormatError{Asset: name, Reason: "blank line inside the header"}
		}
		if fields[0] == "element" {
			faceFields = fields
			break
		}
		if fields[0] != "property" || len(fields) < 3 {
			return nil, &core.FormatError{Asset: name, Reason: fmt.Sprintf("expected property declaration, got %q", line)}
		}
		canonical, known := plyPropertyNames[fields[2]]
		if !known {
			return nil, &core.FormatError{Asset: name, Reason: fmt.Sprintf("unknown vertex property %q", fields[2])}
		}
		slots = append(slots, canonical)
	}

	if len(faceFields) < 3 || faceFields[1] != "face" {
		return nil, &core.FormatError{Asset: name, Reason: fmt.Sprintf("expected face element declaration, got %q", strings.Join(faceFields, " "))}
	}
	faceCount, err := strconv.ParseUint(faceFields[2], 10, 32)
	if err != nil {
		return nil, &core.FormatError{Asset: name, Reason: fmt.Sprintf("invalid face count %q", faceFields[2])}
	}

	// The face property list line and the end_header line.
	for i := 0; i < 2; i++ {
		if _, ok = readLine(); !ok {
			return nil, &core.FormatError{Asset: name, Reason: "header ended before end_header"}
		}
	}

	vertexData := map[string][]float32{
		"x": make([]float32, vertexCount), "y": make([]float32, vertexCount), "z": make([]float32, vertexCount),
		"nx": make([]float32, vertexCount), "ny": make([]float32, vertexCount), "nz": make([]float32, vertexCount),
		"r": make([]float32, vertexCount), "g": make([]float32, vertexCount), "b": make([]float32, vertexCount),
		"u": make([]float32, vertexCount), "v": make([]float32, vertexCount),
	}

	for i := uint64(0); i < vertexCount; i++ {
		line, ok = readLine()
		if !ok {
			return nil, &core.FormatError{Asset: name, Reason: fmt.Sprintf("vertex data ends after %d of %d vertices", i, vertexCount)}
		}
		values := strings.Fields(line)
		if len(values) > len(slots) {
			return nil, &core.FormatError{Asset: name, Reason: fmt.Sprintf("vertex line %d has %d values but only %d properties are declared", i, len(values), len(slots))}
		}
		for j, value := range values {
			f, err := strconv.ParseFloat(value, 32)
			if err != nil {
				return nil, &core.FormatError{Asset: name, Reason: fmt.Sprintf("vertex line %d has non-numeric value %q", i, value)}
			}
			vertexData[slots[j]][i] = float32(f)
		}
	}

	indices := make([]uint32, 0, 3*faceCount)
	for i := uint64(0); i < faceCount; i++ {
		line, ok = readLine()
		if !ok {
			return nil, &core.FormatError{Asset: name, Reason: fmt.Sprintf("face data ends after %d of %d faces", i, faceCount)}
		}
		fields = strings.Fields(line)
		if len(fields) < 2 {
			return nil, &core.FormatError{Asset: name, Reason: fmt.Sprintf("face line %d carries no indices", i)}
		}
		for _, token := range fields[1:] {
			index, err := strconv.ParseUint(token, 10, 32)
			if err != nil {
				return nil, &core.FormatError{Asset: name, Reason: fmt.Sprintf("face line %d has invalid index %q", i, token)}
			}
			if index >= vertexCount {
				return nil, &core.FormatError{Asset: name, Reason: fmt.Sprintf("face line %d references vertex %d of %d", i, index, vertexCount)}
			}
			indices = append(indices, uint32(index))
		}
	}

	mesh := &resources.MeshData{
		Positions:   make([]float32, 0, 3*vertexCount),
		Normals:     make([]float32, 0, 3*vertexCount),
		Colours:     make([]float32, 0, 3*vertexCount),
		Texcoords:   make([]float32, 0, 2*vertexCount),
		Indices:     indices,
		VertexCount: uint32(vertexCount),
	}
	for i := uint64(0); i < vertexCount; i++ {
		mesh.Positions = append(mesh.Positions, vertexData["x"][i], vertexData["y"][i], vertexData["z"][i])
		mesh.Normals = append(mesh.Normals, vertexData["nx"][i], vertexData["ny"][i], vertexData["nz"][i])
		mesh.Colours = append(mesh.Colours, vertexData["r"][i], vertexData["g"][i], vertexData["b"][i])
		mesh.Texcoords = append(mesh.Texcoords, vertexData["u"][i], vertexData["v"][i])
	}

	return mesh, nil
}

func (ml *MeshLoader) Load(path string, assetType resources.ResourceType, params interface{}) (*resources.Resource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &core.IOError{Path: path, Err: err}
	}

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	mesh, err := ParseMesh(name, data)
	if err != nil {
		return nil, err
	}

	return &resources.Resource{
		Name:     name,
		FullPath: path,
		DataSize: uint64(len(data)),
		Data:     mesh,
	}, nil
}

func (ml *MeshLoader) Unload(*resources.Resource) error {
	return nil
}
