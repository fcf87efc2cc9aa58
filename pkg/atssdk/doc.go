// Package atssdk is the Go client for the TalentPipe API.
//
// It layers a tenant-aware resource access facade over the raw HTTP API:
// reads go through a process-wide cache with request de-duplication and
// stale/gc lifecycle (pkg/rescache), writes go through a mutation
// coordinator that scopes payloads to the active organization and
// invalidates affected cache entries, and the whole surface can be switched
// to a fixture-backed demo dataset without touching the network.
//
// Typical wiring:
//
//	prefs, _ := atssdk.NewFilePrefStore(path)
//	provider := atssdk.NewAPISessionProvider(baseURL, prefs)
//	tenant := atssdk.NewTenantContext(provider)
//	flag := atssdk.NewDemoFlag(prefs, tenant, reloadFn)
//	res, _ := atssdk.NewResources(atssdk.Config{
//		Live:   atssdk.NewLiveSource(baseURL, provider.Token),
//		Demo:   atssdk.NewDemoSource(),
//		Tenant: tenant,
//		Flag:   flag,
//	})
//	out := res.List(ctx, atssdk.ResourceClients, nil)
package atssdk
