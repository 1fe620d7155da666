package flow

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/openwms/procflow/internal/config"
	"github.com/openwms/procflow/pkg/common/code"
	"github.com/openwms/procflow/pkg/common/uuid"
	core "github.com/openwms/procflow/pkg/core/flow"
	"github.com/openwms/procflow/pkg/core/graph"
	"github.com/openwms/procflow/pkg/middleware/logger"
)

// ExportFlow assembles the full document plus every stored element
// configuration into one JSON artifact and drops it in the export
// directory for downstream WMS provisioning.
func (f *flowImpl) ExportFlow(ctx context.Context, id uuid.UUID) (*core.ExportResp, error) {
	detail, err := f.GetFlow(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := &core.ExportResp{
		Flow:           detail.FlowResp,
		FlowData:       detail.FlowData,
		Configurations: detail.Configurations,
		ExportedAt:     time.Now().UTC(),
	}

	if len(detail.FlowData) > 0 {
		var data graph.FlowData
		if err := json.Unmarshal(detail.FlowData, &data); err != nil {
			return nil, code.ExportErr.WithErr(err)
		}
		resp.Summary = summarize(&data)
	}

	dir := config.Dynamic(ctx).ExportDir
	if err := os.MkdirAll(dir, 0o755); err != nil {
		logger.Errorf(ctx, "create export dir %s err: %+v", dir, err)
		return nil, code.ExportErr.WithErr(err)
	}

	name := fmt.Sprintf("flow-%s-%d.json", id, resp.ExportedAt.Unix())
	path := filepath.Join(dir, name)
	payload, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		return nil, code.ExportErr.WithErr(err)
	}
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		logger.Errorf(ctx, "write export file %s err: %+v", path, err)
		return nil, code.ExportErr.WithErr(err)
	}

	resp.File = path
	return resp, nil
}

func summarize(data *graph.FlowData) core.ExportSummary {
	sum := core.ExportSummary{
		Locations: len(data.LocationNodes),
		Movements: len(data.MovementEdges),
	}
	for _, node := range data.LocationNodes {
		sum.Sequences += len(node.Sequences)
		for _, seq := range node.Sequences {
			sum.Tasks += len(seq.Tasks)
		}
	}
	return sum
}
