package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"time"

	resty "github.com/go-resty/resty/v2"

	config "github.com/openwms/procflow/internal/config"
	code "github.com/openwms/procflow/pkg/common/code"
	core "github.com/openwms/procflow/pkg/core/catalog"
	logger "github.com/openwms/procflow/pkg/middleware/logger"
	redis "github.com/openwms/procflow/pkg/middleware/redis"
)

const (
	cacheKey = "procflow:catalog:framework"
	cacheTTL = 10 * time.Minute
)

// Load resolves the framework document: explicit file path, then
// remote config service, then the embedded default. The result is
// validated before use; a malformed document aborts startup instead of
// running with a partially typed catalog.
func Load(ctx context.Context, conf *config.Catalog) (core.Service, error) {
	doc, err := loadDocument(ctx, conf)
	if err != nil {
		return nil, err
	}
	if err := Validate(doc); err != nil {
		return nil, err
	}
	return New(doc), nil
}

func loadDocument(ctx context.Context, conf *config.Catalog) (*core.FrameworkConfig, error) {
	switch {
	case conf != nil && conf.Path != "":
		return loadFile(conf.Path)
	case conf != nil && conf.Addr != "":
		return loadRemote(ctx, conf.Addr)
	default:
		return Default(), nil
	}
}

func loadFile(path string) (*core.FrameworkConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, code.CatalogLoadErr.WithErr(err)
	}
	return decode(raw)
}

// loadRemote fetches the document from the config service, caching the
// raw payload in redis so restarts survive a briefly unreachable
// upstream.
func loadRemote(ctx context.Context, addr string) (*core.FrameworkConfig, error) {
	client := resty.New().
		SetTimeout(10 * time.Second).
		SetRetryCount(2)

	resp, err := client.R().SetContext(ctx).Get(addr)
	if err != nil || resp.StatusCode() < 200 || resp.StatusCode() >= 300 {
		if cached := loadCached(ctx); cached != nil {
			logger.Warnf(ctx, "catalog fetch from %s failed, using cached copy: %v", addr, err)
			return cached, nil
		}
		if err == nil {
			err = fmt.Errorf("unexpected status %d", resp.StatusCode())
		}
		return nil, code.CatalogLoadErr.WithErr(err)
	}

	doc, err := decode(resp.Body())
	if err != nil {
		return nil, err
	}

	if rc := redis.GetClient(); rc != nil {
		if err := rc.Set(ctx, cacheKey, resp.Body(), cacheTTL).Err(); err != nil {
			logger.Warnf(ctx, "cache catalog err: %+v", err)
		}
	}
	return doc, nil
}

func loadCached(ctx context.Context) *core.FrameworkConfig {
	rc := redis.GetClient()
	if rc == nil {
		return nil
	}
	raw, err := rc.Get(ctx, cacheKey).Bytes()
	if err != nil {
		return nil
	}
	doc, err := decode(raw)
	if err != nil {
		return nil
	}
	return doc
}

func decode(raw []byte) (*core.FrameworkConfig, error) {
	doc := &core.FrameworkConfig{}
	if err := json.Unmarshal(raw, doc); err != nil {
		return nil, code.CatalogLoadErr.WithErr(err)
	}
	return doc, nil
}

// Validate checks the structural invariants the rest of the system
// relies on. It collects the first offending detail per rule rather
// than stopping at the first problem.
func Validate(doc *core.FrameworkConfig) error {
	if doc == nil {
		return code.CatalogInvalidErr.WithMsg("empty document")
	}

	locationIDs := make(map[string]struct{}, len(doc.LocationNodeTypes))
	for _, t := range doc.LocationNodeTypes {
		if t.ID == "" {
			return code.CatalogInvalidErr.WithMsg("location type with empty id")
		}
		if _, dup := locationIDs[t.ID]; dup {
			return code.CatalogInvalidErr.WithMsgf("duplicate location type id %q", t.ID)
		}
		locationIDs[t.ID] = struct{}{}
		if err := validateFields(t.ID, t.ConfigurationFields); err != nil {
			return err
		}
	}

	movementIDs := make(map[string]struct{}, len(doc.MovementTaskTypes))
	for _, t := range doc.MovementTaskTypes {
		if t.ID == "" {
			return code.CatalogInvalidErr.WithMsg("movement task type with empty id")
		}
		if _, dup := movementIDs[t.ID]; dup {
			return code.CatalogInvalidErr.WithMsgf("duplicate movement task type id %q", t.ID)
		}
		movementIDs[t.ID] = struct{}{}
		if err := validateFields(t.ID, t.ConfigurationFields); err != nil {
			return err
		}
	}

	taskIDs := make(map[string]struct{}, len(doc.LocationTaskTypes))
	for _, t := range doc.LocationTaskTypes {
		if t.ID == "" {
			return code.CatalogInvalidErr.WithMsg("location task type with empty id")
		}
		if _, dup := taskIDs[t.ID]; dup {
			return code.CatalogInvalidErr.WithMsgf("duplicate location task type id %q", t.ID)
		}
		taskIDs[t.ID] = struct{}{}
		if err := validateFields(t.ID, t.ConfigurationFields); err != nil {
			return err
		}
		for _, compat := range t.CompatibleLocationTypes {
			if _, ok := locationIDs[compat]; !ok {
				return code.CatalogInvalidErr.WithMsgf(
					"task type %q references unknown location type %q", t.ID, compat)
			}
		}
	}

	return validateFields("globalTemplateFields", doc.GlobalTemplateFields)
}

func validateFields(owner string, fields []*core.FieldSchema) error {
	seen := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		if f.ID == "" {
			return code.CatalogInvalidErr.WithMsgf("%s: field with empty id", owner)
		}
		if _, dup := seen[f.ID]; dup {
			return code.CatalogInvalidErr.WithMsgf("%s: duplicate field id %q", owner, f.ID)
		}
		seen[f.ID] = struct{}{}

		if !f.Type.Valid() {
			return code.CatalogInvalidErr.WithMsgf("%s.%s: unknown field type %q", owner, f.ID, f.Type)
		}
		if f.Type.NeedsOptions() && len(f.Options) == 0 {
			return code.CatalogInvalidErr.WithMsgf("%s.%s: %s field without options", owner, f.ID, f.Type)
		}
		if f.Validation != nil && f.Validation.Pattern != "" {
			if _, err := regexp.Compile(f.Validation.Pattern); err != nil {
				return code.CatalogInvalidErr.WithMsgf("%s.%s: bad pattern: %v", owner, f.ID, err)
			}
		}
		if f.Validation != nil && f.Validation.Min != nil && f.Validation.Max != nil &&
			*f.Validation.Min > *f.Validation.Max {
			return code.CatalogInvalidErr.WithMsgf("%s.%s: min greater than max", owner, f.ID)
		}
	}
	return nil
}
