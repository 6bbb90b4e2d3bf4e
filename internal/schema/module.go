package schema

import (
	"go.uber.org/fx"
)

// Module is the FX module for schema inspection functionality.
var Module = fx.Module(
	"lq:schema",
	fx.Provide(
		NewService,
	),
)
