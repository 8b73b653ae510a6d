package logs

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
)

// Unit identifies one compilation in log records and errors.
type Unit string

type unitKey struct{}

var UnitKey unitKey

func UnitOf(ctx context.Context) Unit {
	if v := ctx.Value(UnitKey); v != nil {
		return v.(Unit)
	}
	return ""
}

type NewUnit func(ctx context.Context, name string) (context.Context, Unit)

func (Module) NewUnit(
	logger Logger,
) NewUnit {
	return func(ctx context.Context, name string) (context.Context, Unit) {
		parent := UnitOf(ctx)
		unit := Unit(rand.Text()[:10])
		ctx = context.WithValue(ctx, UnitKey, unit)

		args := []any{
			"name", name,
		}
		if parent != "" {
			args = append(args, "parent", parent)
		}
		logger.DebugContext(ctx, "new unit", args...)

		return ctx, unit
	}
}

func WrapUnit(ctx context.Context, err error) error {
	unit := UnitOf(ctx)
	if unit == "" || err == nil {
		return err
	}
	return errors.Join(err, fmt.Errorf("unit: %s", unit))
}
