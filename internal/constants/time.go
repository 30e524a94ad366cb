package constants

import "time"

// CallTimestampLayout is the layout of timestamps carried in call records and
// voice tone analysis details (millisecond precision, UTC).
const CallTimestampLayout = "2006-01-02T15:04:05.000Z"

// EmittedTimestampLayout is the layout of CreatedAt/UpdatedAt stamps on
// emitted stream records (second precision, UTC).
const EmittedTimestampLayout = "2006-01-02T15:04:05Z"

// DefaultContextTimeout is the default timeout for context operations.
const DefaultContextTimeout = 10 * time.Second

// TestContextTimeout is the timeout for test contexts.
const TestContextTimeout = 5 * time.Second
