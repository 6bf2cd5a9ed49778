// Package focus implements the gRPC transport of the focus status service.
//
// It adapts domain types to wire messages and calls into a provided
// business-service interface.
package focus
