package vignette

import (
	"math"

	"github.com/Carmen-Shannon/oxy-trackside/engine/model"
	"github.com/Carmen-Shannon/oxy-trackside/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-trackside/engine/scene"
	"github.com/go-gl/mathgl/mgl32"
)

// carPart is the merged geometry of every car piece sharing one material.
type carPart struct {
	name     string
	material material.Material
	geometry model.Geometry
}

// at places a geometry in car space.
func at(g model.Geometry, x, y, z float32) model.Geometry {
	return g.Transformed(mgl32.Translate3D(x, y, z))
}

// pointingForward turns a +Y cone so its apex faces the car's nose (-Z) and places it.
func pointingForward(g model.Geometry, x, y, z float32) model.Geometry {
	return g.Transformed(mgl32.Translate3D(x, y, z).Mul4(mgl32.HomogRotate3DX(-math.Pi / 2)))
}

// carParts builds the race car in car space with its nose along -Z, grouped by material so each
// group is one draw.
func carParts() []carPart {
	red := material.NewMaterial(material.WithName("car_red"), material.WithHexColor(0xff0000), material.WithEmissive(0x550000, 0.4))
	white := material.NewMaterial(material.WithName("car_white"), material.WithHexColor(0xffffff))
	carbon := material.NewMaterial(material.WithName("car_carbon"), material.WithHexColor(0x111111))
	tire := material.NewMaterial(material.WithName("car_tire"), material.WithHexColor(0x050505))
	cockpit := material.NewMaterial(material.WithName("car_cockpit"), material.WithHexColor(0x000000))
	headlight := material.NewMaterial(material.WithName("car_headlight"), material.WithHexColor(0xffffee), material.WithEmissive(0xffffee, 1))

	nose := model.Cone(0.7, 1.5, 4).Transformed(mgl32.HomogRotate3DY(math.Pi / 4))

	wheel := model.Cylinder(0.45, 0.6, 32)
	var wheels []model.Geometry
	for _, p := range [][2]float32{{-1.6, 1.8}, {1.6, 1.8}, {-1.6, -1.8}, {1.6, -1.8}} {
		wheels = append(wheels, at(wheel, p[0], 0.45, p[1]))
	}

	lamp := model.Cone(0.1, 0.2, 16)

	return []carPart{
		{"car_body", red, model.Merge(
			at(model.Box(1.4, 0.6, 3.5), 0, 0.5, 0),
			pointingForward(nose, 0, 0.5, -2.5),
		)},
		{"car_stripe", white, at(model.Box(0.4, 0.61, 3.5), 0, 0.5, 0)},
		{"car_wings", carbon, model.Merge(
			at(model.Box(0.1, 0.6, 0.5), 0, 0.8, 1.5),
			at(model.Box(2.4, 0.1, 0.8), 0, 1.1, 1.5),
			at(model.Box(3.2, 0.1, 0.8), 0, 0.3, -2.8),
		)},
		{"car_wheels", tire, model.Merge(wheels...)},
		{"car_cockpit", cockpit, at(model.Box(0.7, 0.4, 1.0), 0, 0.8, 0)},
		{"car_headlights", headlight, model.Merge(
			pointingForward(lamp, 0.5, 0.6, -2.0),
			pointingForward(lamp, -0.5, 0.6, -2.0),
		)},
	}
}

// carMeshes turns the car parts into single-instance meshes.
func carMeshes() []scene.Mesh {
	parts := carParts()
	meshes := make([]scene.Mesh, 0, len(parts))
	for _, p := range parts {
		mdl := model.NewModel(model.WithName(p.name), model.WithGeometry(p.geometry))
		meshes = append(meshes, scene.NewMesh(p.name, mdl, p.material))
	}
	return meshes
}

// instanceFanout writes one transform into the same slot of several meshes, so a single tracked
// object can drive a car made of several draws.
type instanceFanout []scene.Mesh

func (f instanceFanout) SetInstance(index uint32, m mgl32.Mat4) {
	for _, mesh := range f {
		mesh.SetInstance(index, m)
	}
}
