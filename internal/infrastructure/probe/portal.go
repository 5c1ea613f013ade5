package probe

import (
	"context"

	"github.com/godbus/dbus/v5"

	"github.com/bnema/dusk/internal/logging"
)

const (
	portalInterface     = "org.freedesktop.portal.Settings"
	portalMember        = "SettingChanged"
	appearanceNamespace = "org.freedesktop.appearance"
	colorSchemeKey      = "color-scheme"
)

// PortalMonitor listens for the desktop portal's SettingChanged signal and
// nudges the watcher so a theme change is picked up before the next poll
// tick. It only improves latency; polling semantics are unchanged and the
// monitor is silently absent when no session bus is reachable.
type PortalMonitor struct {
	conn    *dbus.Conn
	signals chan *dbus.Signal
}

// NewPortalMonitor connects to the session bus and subscribes to portal
// settings changes.
func NewPortalMonitor(ctx context.Context) (*PortalMonitor, error) {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return nil, err
	}

	if err := conn.AddMatchSignalContext(ctx,
		dbus.WithMatchInterface(portalInterface),
		dbus.WithMatchMember(portalMember),
	); err != nil {
		_ = conn.Close()
		return nil, err
	}

	signals := make(chan *dbus.Signal, 16)
	conn.Signal(signals)

	return &PortalMonitor{conn: conn, signals: signals}, nil
}

// Run forwards color-scheme changes to nudge until ctx is cancelled.
func (m *PortalMonitor) Run(ctx context.Context, nudge func()) {
	go func() {
		log := logging.FromContext(ctx)
		for {
			select {
			case <-ctx.Done():
				return
			case sig, ok := <-m.signals:
				if !ok {
					return
				}
				if len(sig.Body) < 2 {
					continue
				}
				namespace, _ := sig.Body[0].(string)
				key, _ := sig.Body[1].(string)
				if namespace != appearanceNamespace || key != colorSchemeKey {
					continue
				}
				log.Debug().Msg("portal reported color-scheme change")
				nudge()
			}
		}
	}()
}

// Close disconnects from the session bus.
func (m *PortalMonitor) Close() error {
	return m.conn.Close()
}
