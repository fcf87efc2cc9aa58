package atssdk

import (
	"net/url"
	"strconv"
)

// DemoFlag decides whether resource operations serve fixture data instead
// of live tenant data. Resolution is evaluated on every operation and never
// fails: if the session is still resolving, only the URL and persisted
// preference are consulted.
//
// Precedence, first match wins:
//  1. an explicit demo=... URL parameter, which also persists the choice
//  2. the persisted tp_demo preference
//  3. the demo_viewer role
//  4. off
type DemoFlag struct {
	prefs  PrefStore
	tenant *TenantContext
	reload func()
}

// NewDemoFlag wires the resolver. reload is invoked after an explicit
// toggle so the application restarts into a consistent all-demo or all-live
// state; a partial transition is never observable. It may be nil.
func NewDemoFlag(prefs PrefStore, tenant *TenantContext, reload func()) *DemoFlag {
	return &DemoFlag{prefs: prefs, tenant: tenant, reload: reload}
}

// Resolve evaluates the precedence chain. query may be nil.
func (d *DemoFlag) Resolve(query url.Values) bool {
	if v := query.Get("demo"); v != "" {
		on := v == "true" || v == "1"
		d.prefs.Set(PrefDemo, strconv.FormatBool(on))
		return on
	}

	if v, ok := d.prefs.Get(PrefDemo); ok {
		return v == "true"
	}

	if d.tenant != nil && !d.tenant.Loading() && d.tenant.Role() == RoleDemoViewer {
		return true
	}

	return false
}

// IsDemo resolves without URL context.
func (d *DemoFlag) IsDemo() bool {
	return d.Resolve(nil)
}

// SetDemo persists the preference and triggers the reload hook.
func (d *DemoFlag) SetDemo(on bool) {
	d.prefs.Set(PrefDemo, strconv.FormatBool(on))
	if d.reload != nil {
		d.reload()
	}
}
