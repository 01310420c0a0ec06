package persistence

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/mash-protocol/meshcop-go/pkg/dataset"
	"github.com/mash-protocol/meshcop-go/pkg/log"
	"github.com/mash-protocol/meshcop-go/pkg/settings"
)

// processStart anchors the default monotonic clock.
var processStart = time.Now()

// monotonicMillis returns milliseconds since process start, truncated to
// 32 bits. Wraps after about 49.7 days.
func monotonicMillis() uint32 {
	return uint32(time.Since(processStart).Milliseconds())
}

// Config configures a LocalDataset.
type Config struct {
	// KeyPolicy decides where NetworkKey and Pskc are kept.
	// If nil, secrets stay in the persisted dataset (NoKeyPolicy).
	KeyPolicy KeyPolicy

	// Clock returns a monotonic millisecond time. Wraparound is allowed.
	// If nil, milliseconds since process start are used.
	Clock func() uint32

	// Logger is the optional operational logger.
	// If nil, logging is disabled.
	Logger *slog.Logger

	// EventLogger receives structured store events.
	// If nil, no events are recorded.
	EventLogger log.Logger
}

// LocalDataset persists the dataset of a single role.
//
// The cached saved flag and timestamp mirror what is in settings storage;
// Restore rebuilds them after a restart.
type LocalDataset struct {
	role     dataset.Role
	settings settings.Store
	keys     KeyPolicy
	clock    func() uint32
	logger   *slog.Logger
	events   log.Logger
	storeID  string

	updateTime       uint32
	timestamp        dataset.Timestamp
	timestampPresent bool
	saved            bool
}

// NewLocalDataset creates a store for role backed by store.
func NewLocalDataset(role dataset.Role, store settings.Store, cfg Config) *LocalDataset {
	ld := &LocalDataset{
		role:     role,
		settings: store,
		keys:     cfg.KeyPolicy,
		clock:    cfg.Clock,
		logger:   cfg.Logger,
		events:   cfg.EventLogger,
		storeID:  uuid.NewString(),
	}
	if ld.keys == nil {
		ld.keys = NoKeyPolicy{}
	}
	if ld.clock == nil {
		ld.clock = monotonicMillis
	}
	if ld.events == nil {
		ld.events = log.NoopLogger{}
	}
	return ld
}

// Role returns the dataset role this store persists.
func (ld *LocalDataset) Role() dataset.Role { return ld.role }

// StoreID returns the instance ID stamped on this store's events.
func (ld *LocalDataset) StoreID() string { return ld.storeID }

// IsSaved reports whether a dataset is persisted for the role.
func (ld *LocalDataset) IsSaved() bool { return ld.saved }

// IsTimestampPresent reports whether the last saved or restored dataset
// carried the role's timestamp.
func (ld *LocalDataset) IsTimestampPresent() bool { return ld.timestampPresent }

// Timestamp returns the cached role timestamp.
func (ld *LocalDataset) Timestamp() (dataset.Timestamp, bool) {
	if !ld.timestampPresent {
		return dataset.Timestamp{}, false
	}
	return ld.timestamp, true
}

// UpdateTime returns the monotonic time of the last Save.
func (ld *LocalDataset) UpdateTime() uint32 { return ld.updateTime }

// CompareTimestamp orders the cached timestamp against other.
// An absent timestamp sorts before any present one.
func (ld *LocalDataset) CompareTimestamp(other *dataset.Timestamp) int {
	switch {
	case !ld.timestampPresent && other == nil:
		return 0
	case !ld.timestampPresent:
		return -1
	case other == nil:
		return 1
	}
	return ld.timestamp.Compare(*other)
}

// Clear removes the persisted dataset and its secrets.
// It never fails and may be called repeatedly.
func (ld *LocalDataset) Clear() {
	start := time.Now()

	ld.keys.Destroy()
	if err := ld.settings.DeleteDataset(ld.role); err != nil {
		ld.debugLog("delete dataset failed", "error", err)
	}
	ld.timestamp = dataset.Timestamp{}
	ld.timestampPresent = false
	ld.saved = false

	ld.logOperation(log.OpClear, nil, time.Since(start))
	ld.logState(log.OpClear)
}

// Restore loads the persisted dataset into d and rebuilds the cached state.
// Call once at startup, before any other operation.
func (ld *LocalDataset) Restore(d *dataset.Dataset) error {
	ld.timestampPresent = false

	if err := ld.Read(d); err != nil {
		ld.logState(log.OpRestore)
		return err
	}

	ld.saved = true
	ld.timestamp, ld.timestampPresent = d.Timestamp(ld.role)
	ld.logState(log.OpRestore)
	return nil
}

// Read loads the persisted dataset into d with secrets restored and, for
// the Pending role, the delay timer aged by the time since the last Save.
// On error d is left empty.
func (ld *LocalDataset) Read(d *dataset.Dataset) error {
	start := time.Now()

	data, err := ld.settings.ReadDataset(ld.role)
	if err != nil {
		d.Clear()
		err = fmt.Errorf("read %s dataset: %w", ld.role, err)
		ld.logError(log.OpRead, "settings read", err)
		return err
	}
	if err := d.SetFrom(data); err != nil {
		ld.logError(log.OpRead, "decode", err)
		return err
	}

	ld.keys.Emplace(d)

	var remaining *uint32
	if ld.role == dataset.RoleActive {
		d.Remove(dataset.TypePendingTimestamp)
		d.Remove(dataset.TypeDelayTimer)
	} else {
		delay, ok := d.DelayTimer()
		if !ok {
			ld.logOperation(log.OpRead, d, time.Since(start))
			return nil
		}
		elapsed := ld.clock() - ld.updateTime
		if delay > elapsed {
			delay -= elapsed
		} else {
			delay = 0
		}
		// Same size as the stored TLV, rewritten in place.
		_ = d.SetDelayTimer(delay)
		remaining = &delay
	}

	d.UpdateTime = ld.clock()

	ld.logOperation(log.OpRead, d, time.Since(start), withDelayTimer(remaining))
	return nil
}

// ReadInfo reads the persisted dataset into its structured form.
// info is cleared first and stays empty on error.
func (ld *LocalDataset) ReadInfo(info *dataset.Info) error {
	info.Clear()

	var d dataset.Dataset
	if err := ld.Read(&d); err != nil {
		return err
	}
	d.ConvertToInfo(info)
	return nil
}

// ReadTLVs reads the persisted dataset as a flat TLV buffer.
// tlvs is cleared first and stays empty on error.
func (ld *LocalDataset) ReadTLVs(tlvs *dataset.TLVs) error {
	*tlvs = dataset.TLVs{}

	var d dataset.Dataset
	if err := ld.Read(&d); err != nil {
		return err
	}
	d.ConvertToTLVs(tlvs)
	return nil
}

// SaveInfo saves a dataset given in structured form.
// A conversion error is returned before anything is changed.
func (ld *LocalDataset) SaveInfo(info *dataset.Info) error {
	var d dataset.Dataset
	if err := d.SetFromInfo(info); err != nil {
		ld.logError(log.OpSave, "convert info", err)
		return err
	}
	return ld.Save(&d)
}

// SaveTLVs saves a dataset given as a flat TLV buffer.
// A malformed buffer is rejected before anything is changed.
func (ld *LocalDataset) SaveTLVs(tlvs *dataset.TLVs) error {
	var d dataset.Dataset
	if err := d.SetFromTLVs(tlvs); err != nil {
		ld.logError(log.OpSave, "convert tlvs", err)
		return err
	}
	return ld.Save(&d)
}

// Save persists d for the role, replacing any previous dataset.
// A d that is empty once normalized for the role deletes the persisted
// dataset.
//
// When secrets are externalized, a NetworkKey or Pskc of the wrong size is
// rejected with dataset.ErrInvalidDataset before anything is changed.
//
// Secrets of the previous dataset are destroyed first. If writing the new
// dataset fails after its secrets were imported, the imported secrets are
// kept and the cached state is left unchanged.
func (ld *LocalDataset) Save(d *dataset.Dataset) error {
	start := time.Now()

	if ld.keys.Externalizes() {
		if err := checkSecretSizes(d); err != nil {
			ld.logError(log.OpSave, "check secrets", err)
			return err
		}
	}

	ld.keys.Destroy()

	var stored dataset.Dataset
	stored.CopyFor(ld.role, d)

	if stored.IsEmpty() {
		if err := ld.settings.DeleteDataset(ld.role); err != nil {
			ld.debugLog("delete dataset failed", "error", err)
		}
		ld.saved = false
		ld.infoLog(fmt.Sprintf("%s dataset deleted", ld.role))
	} else {
		ld.keys.Store(&stored)

		if err := ld.settings.SaveDataset(ld.role, stored.Bytes()); err != nil {
			err = fmt.Errorf("save %s dataset: %w", ld.role, err)
			ld.logError(log.OpSave, "settings write", err)
			return err
		}
		ld.saved = true
		ld.infoLog(fmt.Sprintf("%s dataset set", ld.role), "size", stored.Size())
	}

	ld.timestamp, ld.timestampPresent = d.Timestamp(ld.role)
	ld.updateTime = ld.clock()

	ld.logOperation(log.OpSave, d, time.Since(start))
	ld.logState(log.OpSave)
	return nil
}

func (ld *LocalDataset) infoLog(msg string, args ...any) {
	if ld.logger != nil {
		ld.logger.Info(msg, append([]any{"role", ld.role.String()}, args...)...)
	}
}

func (ld *LocalDataset) debugLog(msg string, args ...any) {
	if ld.logger != nil {
		ld.logger.Debug(msg, append([]any{"role", ld.role.String()}, args...)...)
	}
}

type operationOption func(*log.OperationEvent)

func withDelayTimer(ms *uint32) operationOption {
	return func(op *log.OperationEvent) { op.DelayTimer = ms }
}

func (ld *LocalDataset) newEvent(category log.Category) log.Event {
	return log.Event{
		Timestamp: time.Now(),
		StoreID:   ld.storeID,
		Role:      ld.role,
		Category:  category,
	}
}

// logOperation records a completed operation. Only TLV types are recorded,
// never values.
func (ld *LocalDataset) logOperation(op log.Operation, d *dataset.Dataset, elapsed time.Duration, opts ...operationOption) {
	data := &log.OperationEvent{
		Op:                  op,
		SecretsExternalized: ld.keys.Externalizes() && op != log.OpClear,
		Duration:            elapsed,
	}
	if d != nil {
		data.Size = d.Size()
		data.TLVs = d.Types()
	}
	for _, opt := range opts {
		opt(data)
	}

	event := ld.newEvent(log.CategoryOperation)
	event.Operation = data
	ld.events.Log(event)
}

func (ld *LocalDataset) logState(reason log.Operation) {
	data := &log.StateChangeEvent{
		Saved:            ld.saved,
		TimestampPresent: ld.timestampPresent,
		Reason:           reason.String(),
	}
	if ld.timestampPresent {
		ts := ld.timestamp
		data.Timestamp = &ts
	}

	event := ld.newEvent(log.CategoryState)
	event.StateChange = data
	ld.events.Log(event)
}

func (ld *LocalDataset) logError(op log.Operation, step string, err error) {
	ld.debugLog("dataset operation failed", "op", op.String(), "step", step, "error", err)

	event := ld.newEvent(log.CategoryError)
	event.Error = &log.ErrorEventData{Op: op, Message: err.Error(), Context: step}
	ld.events.Log(event)
}
