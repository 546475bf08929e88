package service

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/drive-mcp/internal/infrastructure/logging"
	"github.com/GriffinCanCode/drive-mcp/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/drive-mcp/internal/shared/id"
	"github.com/GriffinCanCode/drive-mcp/internal/types"
)

// unknownToolLabel keeps arbitrary client input out of metric labels
const unknownToolLabel = "unknown"

// Registry manages tool discovery and execution
type Registry struct {
	mu        sync.RWMutex
	providers []Provider
	services  map[string]Provider
	tools     map[string]Provider
	logger    *logging.Logger
	metrics   *monitoring.Metrics
}

// Provider interface for service implementations
type Provider interface {
	Definition() types.Service
	Execute(ctx context.Context, toolName string, params map[string]interface{}, appCtx *types.Context) (*types.Result, error)
}

// Option configures a Registry
type Option func(*Registry)

// WithLogger sets the logger used for per-call logs
func WithLogger(logger *logging.Logger) Option {
	return func(r *Registry) {
		r.logger = logger
	}
}

// WithMetrics enables tool call metrics
func WithMetrics(metrics *monitoring.Metrics) Option {
	return func(r *Registry) {
		r.metrics = metrics
	}
}

// NewRegistry creates a new service registry
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		services: make(map[string]Provider),
		tools:    make(map[string]Provider),
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register adds a service provider. Tool names must be unique across services.
func (r *Registry) Register(provider Provider) error {
	def := provider.Definition()
	if def.ID == "" {
		return fmt.Errorf("service ID cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.services[def.ID]; exists {
		return fmt.Errorf("service already registered: %s", def.ID)
	}
	for _, tool := range def.Tools {
		if tool.Name == "" {
			return fmt.Errorf("service %s: tool name cannot be empty", def.ID)
		}
		if _, exists := r.tools[tool.Name]; exists {
			return fmt.Errorf("service %s: tool already registered: %s", def.ID, tool.Name)
		}
	}

	r.providers = append(r.providers, provider)
	r.services[def.ID] = provider
	for _, tool := range def.Tools {
		r.tools[tool.Name] = provider
	}

	r.logger.Debug("service registered",
		zap.String("service", def.ID),
		zap.Int("tools", len(def.Tools)),
	)
	return nil
}

// List returns all registered services in registration order
func (r *Registry) List() []types.Service {
	r.mu.RLock()
	defer r.mu.RUnlock()

	services := make([]types.Service, 0, len(r.providers))
	for _, provider := range r.providers {
		services = append(services, provider.Definition())
	}
	return services
}

// Tools returns the listing form of every registered tool
func (r *Registry) Tools() []types.Descriptor {
	var descriptors []types.Descriptor
	for _, svc := range r.List() {
		for _, tool := range svc.Tools {
			descriptors = append(descriptors, tool.Descriptor())
		}
	}
	return descriptors
}

// Execute runs a tool by name. Failures are always *types.ToolError.
func (r *Registry) Execute(ctx context.Context, toolName string, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	appCtx = withRequestID(appCtx)
	log := r.logger.With(
		zap.String("request_id", appCtx.RequestID),
		zap.String("tool", toolName),
		zap.String("transport", appCtx.Transport),
	)

	r.mu.RLock()
	provider, ok := r.tools[toolName]
	r.mu.RUnlock()

	if !ok {
		err := types.MethodNotFound(toolName)
		r.metrics.RecordToolError(unknownToolLabel, string(err.Kind))
		log.Warn("unknown tool")
		return nil, err
	}

	timer := monitoring.NewTimer(r.metrics, toolName)
	result, err := provider.Execute(ctx, toolName, params, appCtx)
	if err != nil {
		te, ok := types.AsToolError(err)
		if !ok {
			te = types.NewToolError(types.KindInternal, toolName, fmt.Sprintf("Error in %s: %s", toolName, err.Error()), err)
		}
		duration := timer.Stop("error")
		r.metrics.RecordToolError(toolName, string(te.Kind))
		log.Warn("tool call failed",
			zap.String("kind", string(te.Kind)),
			zap.Duration("duration", duration),
			zap.Error(te),
		)
		return nil, te
	}

	duration := timer.Stop("success")
	log.Debug("tool call completed", zap.Duration("duration", duration))
	return result, nil
}

// Stats returns registry statistics
func (r *Registry) Stats() map[string]interface{} {
	var total, totalTools int
	categories := make(map[string]int)

	for _, svc := range r.List() {
		total++
		totalTools += len(svc.Tools)
		categories[string(svc.Category)]++
	}

	return map[string]interface{}{
		"total_services": total,
		"total_tools":    totalTools,
		"categories":     categories,
	}
}

func withRequestID(appCtx *types.Context) *types.Context {
	if appCtx == nil {
		return &types.Context{RequestID: id.NewRequestID().String()}
	}
	if appCtx.RequestID != "" {
		return appCtx
	}
	copied := *appCtx
	copied.RequestID = id.NewRequestID().String()
	return &copied
}
