package weblog

// A Key names a value the weblog stashes in a request's context.
type Key string

const (
	DBScopeKey   Key = "DBScopeKey"   // *store.Scope lent to the request
	IpAddrKey    Key = "IpAddrKey"    // originating IP address, a string
	RequestIDKey Key = "RequestIDKey" // UUID identifying the request, a string
	SessionKey   Key = "SessionKey"   // session.Sessionable for the request
)

func (k Key) String() string {
	return "weblog context key: " + string(k)
}
