package key

import (
	"fmt"
	"sync"
)

// ID identifies a known flow key name. Unknown is the catch-all used for
// names missing from the table.
type ID uint8

const (
	Unknown ID = iota

	IPSource
	IPDestination

	// IP version 6
	IP6Offset         // IPv6 header offset from start of packet
	IP6TOS            // type of service bits
	IP6ECN            // explicit congestion notification bits
	IP6DSCP           // differentiated services code point
	IP6DSCPName       // differentiated services code point name
	IP6FlowLabel      // flow label
	IP6TTL            // time to live
	IP6Source         // source address
	IP6Destination    // destination address
	IP6Bytes          // payload bytes
	IP6Extensions     // next header values of extension headers
	IP6FragmentOffset // fragment offset
	IP6FragmentMFlag  // fragment m flag
	IP6NextHeader     // next header

	Agent
	InputIfIndex
	OutputIfIndex
	MacSource
	MacDestination
	EthernetProtocol
	IPProtocol
	IPTOS
	IPTTL
	TCPSourcePort
	TCPDestinationPort
	TCPFlags
	UDPSourcePort
	UDPDestinationPort
	ICMPType
	ICMPCode

	idCount
)

// knownNames declares the canonical string of every known ID. Both lookup
// tables are built from it.
var knownNames = [...]struct {
	id   ID
	name string
}{
	{IPSource, "ipsource"},
	{IPDestination, "ipdestination"},

	{IP6Offset, "ip6_offset"},
	{IP6TOS, "ip6tos"},
	{IP6ECN, "ip6ecn"},
	{IP6DSCP, "ip6dscp"},
	{IP6DSCPName, "ip6dscpname"},
	{IP6FlowLabel, "ip6flowlabel"},
	{IP6TTL, "ip6ttl"},
	{IP6Source, "ip6source"},
	{IP6Destination, "ip6destination"},
	{IP6Bytes, "ip6bytes"},
	{IP6Extensions, "ip6extensions"},
	{IP6FragmentOffset, "ip6fragoffset"},
	{IP6FragmentMFlag, "ip6fragm"},
	{IP6NextHeader, "ip6nexthdr"},

	{Agent, "agent"},
	{InputIfIndex, "inputifindex"},
	{OutputIfIndex, "outputifindex"},
	{MacSource, "macsource"},
	{MacDestination, "macdestination"},
	{EthernetProtocol, "ethernetprotocol"},
	{IPProtocol, "ipprotocol"},
	{IPTOS, "iptos"},
	{IPTTL, "ipttl"},
	{TCPSourcePort, "tcpsourceport"},
	{TCPDestinationPort, "tcpdestinationport"},
	{TCPFlags, "tcpflags"},
	{UDPSourcePort, "udpsourceport"},
	{UDPDestinationPort, "udpdestinationport"},
	{ICMPType, "icmptype"},
	{ICMPCode, "icmpcode"},
}

var (
	tablesOnce sync.Once
	nameToID   map[string]ID
	idToName   map[ID]string

	// ErrNameTable reports inconsistent key name tables.
	ErrNameTable = fmt.Errorf("key name table error")
)

func tables() (map[string]ID, map[ID]string) {
	tablesOnce.Do(func() {
		forward := make(map[string]ID, len(knownNames))
		for _, kn := range knownNames {
			forward[kn.name] = kn.id
		}
		inverse := make(map[ID]string, len(knownNames))
		for _, kn := range knownNames {
			inverse[kn.id] = kn.name
		}
		nameToID, idToName = forward, inverse
	})
	return nameToID, idToName
}

// Name is a flow key name. Known names carry their ID; any other name is
// kept verbatim in Raw with ID set to Unknown.
type Name struct {
	ID  ID
	Raw string
}

func (Name) expression() {}

// Resolve maps text to its known Name, or to an Unknown name wrapping text.
// It never fails.
func Resolve(text string) Name {
	forward, _ := tables()
	if id, ok := forward[text]; ok {
		return Name{ID: id}
	}
	return Name{ID: Unknown, Raw: text}
}

// Known reports whether n is one of the known key names.
func (n Name) Known() bool {
	return n.ID != Unknown
}

// Canonical returns the canonical string of a known name. It returns false
// for Unknown names.
func (n Name) Canonical() (string, bool) {
	if n.ID == Unknown {
		return "", false
	}
	_, inverse := tables()
	s, ok := inverse[n.ID]
	return s, ok
}

func (n Name) String() string {
	if s, ok := n.Canonical(); ok {
		return s
	}
	return n.Raw
}

func (id ID) String() string {
	if id == Unknown {
		return "unknown"
	}
	_, inverse := tables()
	if s, ok := inverse[id]; ok {
		return s
	}
	return fmt.Sprintf("ID(%d)", uint8(id))
}

// KnownNames returns every known key name in declaration order.
func KnownNames() []Name {
	names := make([]Name, len(knownNames))
	for i, kn := range knownNames {
		names[i] = Name{ID: kn.id}
	}
	return names
}

// CheckNameTables verifies that the name tables form a bijection covering
// every known ID.
func CheckNameTables() error {
	forward, inverse := tables()
	return checkTables(forward, inverse, int(idCount)-1)
}

func checkTables(forward map[string]ID, inverse map[ID]string, known int) error {
	if len(forward) != len(inverse) {
		return fmt.Errorf("%w: %d names for %d identifiers", ErrNameTable, len(forward), len(inverse))
	}
	if len(forward) != known {
		return fmt.Errorf("%w: %d names for %d known identifiers", ErrNameTable, len(forward), known)
	}
	for name, id := range forward {
		if id == Unknown {
			return fmt.Errorf("%w: %q maps to the unknown identifier", ErrNameTable, name)
		}
		if back, ok := inverse[id]; !ok || back != name {
			return fmt.Errorf("%w: %q maps to %d which maps back to %q", ErrNameTable, name, id, back)
		}
	}
	for id, name := range inverse {
		if back, ok := forward[name]; !ok || back != id {
			return fmt.Errorf("%w: identifier %d maps to %q which maps back to %d", ErrNameTable, id, name, back)
		}
	}
	for id := ID(1); int(id) <= known; id++ {
		if _, ok := inverse[id]; !ok {
			return fmt.Errorf("%w: identifier %d has no name", ErrNameTable, id)
		}
	}
	return nil
}
