package memtable

import (
	"github.com/pkg/errors"

	"github.com/cube2222/octomap/codec"
	"github.com/cube2222/octomap/host"
	"github.com/cube2222/octomap/inference"
	"github.com/cube2222/octomap/octomap"
)

// CastColumn is SELECT column::target FROM frame.
//
// The frame is scanned before the cast is bound, so no target type is pushed
// down: the column gets its inferred type first (string keyed dicts become
// STRUCTs) and is cast afterwards. This is why casting dicts to a MAP here
// fails with STRUCT(...) -> MAP(...), while inserting them into a MAP column works.
func CastColumn(frame *host.Frame, column string, target octomap.Type) ([]octomap.Value, error) {
	c, ok := frame.Column(column)
	if !ok {
		return nil, errors.Errorf("frame has no column '%s'", column)
	}
	scanType, err := inference.InferColumn(c.Values)
	if err != nil {
		return nil, errors.Wrapf(err, "couldn't infer type of column '%s'", column)
	}

	out := make([]octomap.Value, len(c.Values))
	for i := range c.Values {
		scanned, err := codec.FromHost(c.Values[i], scanType)
		if err != nil {
			return nil, errors.Wrapf(err, "couldn't scan row %d of column '%s'", i, column)
		}
		if out[i], err = octomap.Cast(scanned, target); err != nil {
			return nil, err
		}
	}
	return out, nil
}
