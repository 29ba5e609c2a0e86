package onboard

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/HerbHall/gangway/internal/netbox"
)

// Pipeline is the single-device onboarding flow: reachability probe,
// platform detection, platform resolution, fact collection, management
// interface resolution, then inventory reconciliation. Stages run in
// strict order and the first failure aborts the run. A pipeline is safe
// for concurrent use; each Run is independent.
type Pipeline struct {
	inv        Inventory
	cfg        Config
	creds      Credentials
	detector   *Detector
	reconciler *Reconciler
	logger     *zap.Logger
}

// NewPipeline wires a pipeline over the given inventory store and
// default device credentials.
func NewPipeline(inv Inventory, cfg Config, creds Credentials, logger *zap.Logger) *Pipeline {
	return &Pipeline{
		inv:        inv,
		cfg:        cfg,
		creds:      creds,
		detector:   NewDetector(cfg, logger),
		reconciler: NewReconciler(inv, cfg, logger),
		logger:     logger,
	}
}

// Run onboards a single device and returns the reconciled inventory
// record. Errors carry a Reason classifying the failure stage; callers
// that retry simply call Run again, reconciliation is idempotent.
func (p *Pipeline) Run(ctx context.Context, req Request) (*netbox.NBDevice, error) {
	start := time.Now()
	device, err := p.run(ctx, req)
	elapsed := time.Since(start)

	if err != nil {
		reason := ReasonOf(err)
		onboardTotal.WithLabelValues("failure", string(reason)).Inc()
		onboardDuration.WithLabelValues("failure").Observe(elapsed.Seconds())
		p.logger.Warn("onboarding failed",
			zap.String("ip", req.IPAddress),
			zap.String("reason", string(reason)),
			zap.Duration("elapsed", elapsed),
			zap.Error(err),
		)
		return nil, err
	}

	onboardTotal.WithLabelValues("success", "").Inc()
	onboardDuration.WithLabelValues("success").Observe(elapsed.Seconds())
	p.logger.Info("onboarding succeeded",
		zap.String("ip", req.IPAddress),
		zap.Int("device_id", device.ID),
		zap.Duration("elapsed", elapsed),
	)
	return device, nil
}

func (p *Pipeline) run(ctx context.Context, req Request) (*netbox.NBDevice, error) {
	req = req.normalized(p.cfg, p.creds)
	if err := req.validate(); err != nil {
		return nil, err
	}

	if err := CheckReachability(ctx, req.IPAddress, req.Port, req.Timeout); err != nil {
		return nil, err
	}
	p.logger.Debug("device reachable", zap.String("ip", req.IPAddress), zap.Int("port", req.Port))

	platformName, err := p.detector.Detect(ctx, req)
	if err != nil {
		return nil, err
	}
	p.logger.Debug("platform detected", zap.String("ip", req.IPAddress), zap.String("platform", platformName))

	platform, err := ResolvePlatform(ctx, p.inv, platformName, p.cfg.CreatePlatformIfMissing)
	if err != nil {
		return nil, err
	}

	facts, err := CollectFacts(ctx, platform.NapalmDriver, req)
	if err != nil {
		return nil, err
	}
	p.logger.Debug("facts collected",
		zap.String("ip", req.IPAddress),
		zap.String("hostname", facts.Hostname),
		zap.String("model", facts.Model),
	)

	binding, err := ResolveManagementInterface(facts.InterfaceIPs, req.IPAddress)
	if err != nil {
		return nil, err
	}

	return p.reconciler.Reconcile(ctx, facts, binding, platform, req)
}
