package generator

import (
	"fmt"
	"strings"

	"shireesh.com/cutter/internal/cleanup"
	"shireesh.com/cutter/internal/config"
	"shireesh.com/cutter/internal/option"
	"shireesh.com/cutter/internal/output"
	"shireesh.com/cutter/internal/rules"
)

// PreGen runs before rendering. It only reads values and never touches disk.
func PreGen(values config.Context) error {
	output.Debug("validating option combination",
		option.GRPCEnabled, values[option.GRPCEnabled],
		option.GRPCGatewayEnabled, values[option.GRPCGatewayEnabled])

	return rules.Validate(values)
}

// PostGen prunes the rendered project at root according to grpc_enabled.
func PostGen(root string, values config.Context, dryRun bool) (*cleanup.Report, error) {
	grpcEnabled, err := values.Flag(option.GRPCEnabled)
	if err != nil {
		return nil, err
	}

	c := cleanup.New(root)
	c.DryRun = dryRun

	report, err := c.Run(grpcEnabled)
	if err != nil {
		return report, fmt.Errorf("cleaning %s: %w", root, err)
	}
	if len(report.Missing) > 0 {
		output.Warn("feature files not found in project", "set", report.Set, "paths", strings.Join(report.Missing, ","))
	}
	return report, nil
}
