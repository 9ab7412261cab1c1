// Routing hierarchy: a tree of netzones rooted at a single zone, each owning
// its children, its netpoints, and its routes. Zone-typed queries always
// traverse root-to-leaves.

package sim

// NetPointKind is the concrete nature of a routing netpoint.
type NetPointKind int

const (
	// NetPointHost: attachment point of a host.
	NetPointHost NetPointKind = iota
	// NetPointRouter: pure routing node.
	NetPointRouter
	// NetPointZone: gateway of a child zone.
	NetPointZone
)

func (k NetPointKind) String() string {
	switch k {
	case NetPointHost:
		return "host"
	case NetPointRouter:
		return "router"
	case NetPointZone:
		return "netzone"
	default:
		return "unknown"
	}
}

// NetPoint is a node of the routing graph.
type NetPoint struct {
	name string
	kind NetPointKind
	zone *NetZone
}

// Name returns the netpoint name.
func (p *NetPoint) Name() string { return p.name }

// Kind returns the concrete netpoint kind.
func (p *NetPoint) Kind() NetPointKind { return p.kind }

// Zone returns the englobing netzone.
func (p *NetPoint) Zone() *NetZone { return p.zone }

// routeKey identifies a directed route inside one zone.
type routeKey struct {
	src, dst string
}

// NetZone is one node of the routing-zone tree.
type NetZone struct {
	name      string
	kind      string // routing refinement, e.g. "full", "cluster", "dijkstra"
	engine    *Engine
	parent    *NetZone
	children  []*NetZone
	netpoints []*NetPoint
	routes    map[routeKey][]*Link
}

// NewNetzoneRoot creates the root of the routing hierarchy and installs it
// on the engine. kind names the zone's routing refinement.
func (e *Engine) NewNetzoneRoot(name, kind string) *NetZone {
	z := &NetZone{name: name, kind: kind, engine: e, routes: make(map[routeKey][]*Link)}
	e.SetNetzoneRoot(z)
	return z
}

// Name returns the zone name.
func (z *NetZone) Name() string { return z.name }

// Kind returns the routing refinement of the zone.
func (z *NetZone) Kind() string { return z.kind }

// Parent returns the enclosing zone, nil for the root.
func (z *NetZone) Parent() *NetZone { return z.parent }

// Children returns the child zones, in creation order.
func (z *NetZone) Children() []*NetZone { return append([]*NetZone(nil), z.children...) }

// Netpoints returns the zone-owned netpoints, in creation order.
func (z *NetZone) Netpoints() []*NetPoint { return append([]*NetPoint(nil), z.netpoints...) }

// NewChild creates a child zone.
func (z *NetZone) NewChild(name, kind string) *NetZone {
	child := &NetZone{name: name, kind: kind, engine: z.engine, parent: z, routes: make(map[routeKey][]*Link)}
	z.children = append(z.children, child)
	return child
}

// AddHost creates a host in the zone, with its netpoint, and registers both.
func (z *NetZone) AddHost(name string, speed float64) *Host {
	p := &NetPoint{name: name, kind: NetPointHost, zone: z}
	z.netpoints = append(z.netpoints, p)
	z.engine.RegisterNetpoint(p)
	h := &Host{
		name:       name,
		speed:      speed,
		speedScale: 1,
		on:         true,
		engine:     z.engine,
		zone:       z,
		netpoint:   p,
	}
	z.engine.RegisterHost(h)
	return h
}

// AddRouter creates a pure routing netpoint in the zone.
func (z *NetZone) AddRouter(name string) *NetPoint {
	p := &NetPoint{name: name, kind: NetPointRouter, zone: z}
	z.netpoints = append(z.netpoints, p)
	z.engine.RegisterNetpoint(p)
	return p
}

// AddLink creates a link in the zone and registers it.
func (z *NetZone) AddLink(name string, bandwidth, latency float64) *Link {
	l := &Link{
		name:      name,
		bandwidth: bandwidth,
		latency:   latency,
		bwScale:   1,
		on:        true,
		engine:    z.engine,
		zone:      z,
	}
	z.engine.RegisterLink(l)
	return l
}

// AddRoute declares the symmetric route between two netpoints as an ordered
// link sequence.
func (z *NetZone) AddRoute(src, dst *NetPoint, links []*Link) {
	route := append([]*Link(nil), links...)
	z.routes[routeKey{src.name, dst.name}] = route
	z.routes[routeKey{dst.name, src.name}] = route
}

// Route returns the declared route between two netpoint names, searching this
// zone then its children depth-first.
func (z *NetZone) Route(src, dst string) ([]*Link, bool) {
	if route, ok := z.routes[routeKey{src, dst}]; ok {
		return route, true
	}
	for _, child := range z.children {
		if route, ok := child.Route(src, dst); ok {
			return route, true
		}
	}
	return nil, false
}

func (z *NetZone) findByName(name string) *NetZone {
	if z == nil {
		return nil
	}
	if z.name == name {
		return z
	}
	for _, child := range z.children {
		if found := child.findByName(name); found != nil {
			return found
		}
	}
	return nil
}

// routeBetween resolves the route between two hosts from the zone root and
// folds it into the latency sum and bottleneck bandwidth a transfer pays.
// Routes through a link that is off are unusable.
func (e *Engine) routeBetween(src, dst *Host) (latency, bandwidth float64, err error) {
	if e.netzoneRoot == nil {
		return 0, 0, ErrNoRoute
	}
	route, ok := e.netzoneRoot.Route(src.name, dst.name)
	if !ok || len(route) == 0 {
		return 0, 0, ErrNoRoute
	}
	bandwidth = route[0].Bandwidth()
	for _, l := range route {
		if !l.IsOn() {
			return 0, 0, ErrNoRoute
		}
		latency += l.Latency()
		if bw := l.Bandwidth(); bw < bandwidth {
			bandwidth = bw
		}
	}
	return latency, bandwidth, nil
}
