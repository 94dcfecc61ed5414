package vignette

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-trackside/engine/instancing"
	"github.com/Carmen-Shannon/oxy-trackside/engine/model"
	"github.com/Carmen-Shannon/oxy-trackside/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-trackside/engine/scene"
	"github.com/Carmen-Shannon/oxy-trackside/engine/track"
)

const (
	roadHalfWidth = 8.0
	roadHeight    = 0.4
	curbHalfWidth = 8.6
	curbHeight    = 0.35

	laneMarkerCount  = 100
	laneMarkerHeight = 0.42

	postCount  = 200
	postHeight = 0.75

	railSegments = 400
	railRadius   = 0.2
	railRadial   = 8
	upperRailY   = 1.0
	lowerRailY   = 0.5
)

// trackLayout is the immutable geometry of one generated track.
type trackLayout struct {
	centre      *track.Curve
	left, right *track.Curve
	sets        map[string]*instancing.Batch
}

// buildLayout generates the centre curve, derives the barrier lines and samples the instance sets.
func buildLayout(cfg *config) (*trackLayout, error) {
	centre, err := track.Generate(cfg.segments, cfg.generatorOptions...)
	if err != nil {
		return nil, fmt.Errorf("generate track: %w", err)
	}
	left, right, err := track.Offset(centre, cfg.offsetResolution, cfg.barrierOffset)
	if err != nil {
		return nil, fmt.Errorf("derive barriers: %w", err)
	}
	sets, err := instancing.BuildSets(cfg.buildWorkers,
		instancing.SetSpec{Name: instancing.LaneMarkers, Curve: centre, Count: laneMarkerCount,
			Options: []instancing.BatchBuilderOption{instancing.WithHeight(laneMarkerHeight)}},
		instancing.SetSpec{Name: instancing.PostsLeft, Curve: left, Count: postCount,
			Options: []instancing.BatchBuilderOption{instancing.WithHeight(postHeight)}},
		instancing.SetSpec{Name: instancing.PostsRight, Curve: right, Count: postCount,
			Options: []instancing.BatchBuilderOption{instancing.WithHeight(postHeight)}},
	)
	if err != nil {
		return nil, fmt.Errorf("build instance sets: %w", err)
	}
	return &trackLayout{centre: centre, left: left, right: right, sets: sets}, nil
}

// meshes returns the static track meshes in draw order.
func (l *trackLayout) meshes(segments int) []scene.Mesh {
	asphalt := material.NewMaterial(material.WithName("asphalt"), material.WithHexColor(0x151515))
	curb := material.NewMaterial(material.WithName("curb"), material.WithHexColor(0xcc0000))
	paint := material.NewMaterial(material.WithName("lane_paint"), material.WithHexColor(0xffffff), material.WithEmissive(0xffffff, 0.5))
	steel := material.NewMaterial(material.WithName("rail_steel"), material.WithHexColor(0xdddddd))
	lowerRail := material.NewMaterial(material.WithName("rail_red"), material.WithHexColor(0xdc2626))
	post := material.NewMaterial(material.WithName("post_grey"), material.WithHexColor(0x666666))

	// Both sides of a rail tier share one material, so they are merged into one draw.
	rails := func(y float64) model.Geometry {
		return model.Merge(
			model.Tube(l.left, railSegments, railRadius, railRadial, y),
			model.Tube(l.right, railSegments, railRadius, railRadial, y),
		)
	}

	marker := model.NewModel(model.WithName("lane_marker"), model.WithGeometry(model.Plane(0.6, 2)))
	postModel := model.NewModel(model.WithName("post"), model.WithGeometry(model.Box(0.3, 1.5, 0.3)))

	return []scene.Mesh{
		scene.NewMesh("curb", model.NewModel(model.WithName("curb"),
			model.WithGeometry(model.Ribbon(l.centre, segments*2, curbHalfWidth, curbHeight))), curb),
		scene.NewMesh("road", model.NewModel(model.WithName("road"),
			model.WithGeometry(model.Ribbon(l.centre, segments*2, roadHalfWidth, roadHeight))), asphalt),
		scene.NewMesh(instancing.LaneMarkers, marker, paint,
			scene.WithInstances(l.sets[instancing.LaneMarkers].Matrices())),
		scene.NewMesh("rails_upper", model.NewModel(model.WithName("rails_upper"), model.WithGeometry(rails(upperRailY))), steel),
		scene.NewMesh("rails_lower", model.NewModel(model.WithName("rails_lower"), model.WithGeometry(rails(lowerRailY))), lowerRail),
		scene.NewMesh(instancing.PostsLeft, postModel, post,
			scene.WithInstances(l.sets[instancing.PostsLeft].Matrices())),
		scene.NewMesh(instancing.PostsRight, postModel, post,
			scene.WithInstances(l.sets[instancing.PostsRight].Matrices())),
	}
}
