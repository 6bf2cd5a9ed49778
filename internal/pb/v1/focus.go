package pb

import (
	"errors"
	"fmt"
	"time"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
)

// Field names of the wire messages.
const (
	FieldDistracted      = "distracted"
	FieldTimestamp       = "timestamp"
	FieldLastActor       = "last_actor"
	FieldActor           = "actor"
	FieldRequestingActor = "requesting_actor"
	FieldHostname        = "hostname"
	FieldUsername        = "username"
)

var (
	// ErrMissingField is returned when a required field is absent.
	ErrMissingField = errors.New("missing field")
	// ErrFieldType is returned when a field holds a value of the wrong kind.
	ErrFieldType = errors.New("unexpected field type")
)

// SystemActor identifies the machine and user behind a request.
type SystemActor struct {
	// Hostname is the machine name.
	Hostname string
	// Username is the system user.
	Username string
}

// GetHostname returns the hostname or an empty string for a nil actor.
func (a *SystemActor) GetHostname() string {
	if a == nil {
		return ""
	}

	return a.Hostname
}

// GetUsername returns the username or an empty string for a nil actor.
func (a *SystemActor) GetUsername() string {
	if a == nil {
		return ""
	}

	return a.Username
}

// GetStatusRequest asks for the current status.
type GetStatusRequest struct {
	// RequestingActor is who is asking, for audit logs.
	RequestingActor *SystemActor
}

// GetRequestingActor returns the requesting actor or nil.
func (r *GetStatusRequest) GetRequestingActor() *SystemActor {
	if r == nil {
		return nil
	}

	return r.RequestingActor
}

// SetStatusRequest publishes a new distraction status.
type SetStatusRequest struct {
	// Actor is who publishes the status.
	Actor *SystemActor
	// Distracted is the published signal.
	Distracted bool
}

// GetActor returns the publishing actor or nil.
func (r *SetStatusRequest) GetActor() *SystemActor {
	if r == nil {
		return nil
	}

	return r.Actor
}

// GetDistracted returns the published signal or false for a nil request.
func (r *SetStatusRequest) GetDistracted() bool {
	return r != nil && r.Distracted
}

// StatusResponse carries the current distraction status.
type StatusResponse struct {
	// Timestamp is when the status last changed. Zero when unknown.
	Timestamp time.Time
	// LastActor is who last changed the status.
	LastActor *SystemActor
	// Distracted is the current signal.
	Distracted bool
}

// GetTimestamp returns the change time or the zero time.
func (r *StatusResponse) GetTimestamp() time.Time {
	if r == nil {
		return time.Time{}
	}

	return r.Timestamp
}

// GetLastActor returns the last actor or nil.
func (r *StatusResponse) GetLastActor() *SystemActor {
	if r == nil {
		return nil
	}

	return r.LastActor
}

// GetDistracted returns the signal or false for a nil response.
func (r *StatusResponse) GetDistracted() bool {
	return r != nil && r.Distracted
}

// ToStruct converts the response into its wire form.
func (r *StatusResponse) ToStruct() *structpb.Struct {
	fields := map[string]*structpb.Value{
		FieldDistracted: structpb.NewBoolValue(r.GetDistracted()),
	}

	if ts := r.GetTimestamp(); !ts.IsZero() {
		fields[FieldTimestamp] = structpb.NewStringValue(ts.UTC().Format(time.RFC3339Nano))
	}

	if actor := r.GetLastActor(); actor != nil {
		fields[FieldLastActor] = actorToValue(actor)
	}

	return &structpb.Struct{Fields: fields}
}

// StatusResponseFromStruct decodes a wire status. The distracted flag is required.
func StatusResponseFromStruct(s *structpb.Struct) (*StatusResponse, error) {
	distracted, err := requiredBool(s, FieldDistracted)
	if err != nil {
		return nil, err
	}

	timestamp, err := optionalTime(s, FieldTimestamp)
	if err != nil {
		return nil, err
	}

	actor, err := optionalActor(s, FieldLastActor)
	if err != nil {
		return nil, err
	}

	return &StatusResponse{
		Timestamp:  timestamp,
		LastActor:  actor,
		Distracted: distracted,
	}, nil
}

// MarshalStatusJSON renders a status as JSON, optionally indented.
func MarshalStatusJSON(r *StatusResponse, multiline bool) ([]byte, error) {
	options := protojson.MarshalOptions{
		Multiline: multiline,
	}

	data, err := options.Marshal(r.ToStruct())
	if err != nil {
		return nil, fmt.Errorf("encode status: %w", err)
	}

	return data, nil
}

// UnmarshalStatusJSON parses a JSON status object. Unknown fields are ignored,
// the distracted flag must be present and boolean.
func UnmarshalStatusJSON(data []byte) (*StatusResponse, error) {
	s := new(structpb.Struct)
	if err := protojson.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("decode status: %w", err)
	}

	return StatusResponseFromStruct(s)
}

// toStruct converts the request into its wire form.
func (r *GetStatusRequest) toStruct() *structpb.Struct {
	fields := make(map[string]*structpb.Value, 1)
	if actor := r.GetRequestingActor(); actor != nil {
		fields[FieldRequestingActor] = actorToValue(actor)
	}

	return &structpb.Struct{Fields: fields}
}

// getStatusRequestFromStruct decodes a wire GetStatus request.
func getStatusRequestFromStruct(s *structpb.Struct) (*GetStatusRequest, error) {
	actor, err := optionalActor(s, FieldRequestingActor)
	if err != nil {
		return nil, err
	}

	return &GetStatusRequest{RequestingActor: actor}, nil
}

// toStruct converts the request into its wire form.
func (r *SetStatusRequest) toStruct() *structpb.Struct {
	fields := map[string]*structpb.Value{
		FieldDistracted: structpb.NewBoolValue(r.GetDistracted()),
	}

	if actor := r.GetActor(); actor != nil {
		fields[FieldActor] = actorToValue(actor)
	}

	return &structpb.Struct{Fields: fields}
}

// setStatusRequestFromStruct decodes a wire SetStatus request.
func setStatusRequestFromStruct(s *structpb.Struct) (*SetStatusRequest, error) {
	distracted, err := requiredBool(s, FieldDistracted)
	if err != nil {
		return nil, err
	}

	actor, err := optionalActor(s, FieldActor)
	if err != nil {
		return nil, err
	}

	return &SetStatusRequest{
		Actor:      actor,
		Distracted: distracted,
	}, nil
}

// actorToValue converts an actor into a nested struct value.
func actorToValue(a *SystemActor) *structpb.Value {
	return structpb.NewStructValue(&structpb.Struct{
		Fields: map[string]*structpb.Value{
			FieldHostname: structpb.NewStringValue(a.GetHostname()),
			FieldUsername: structpb.NewStringValue(a.GetUsername()),
		},
	})
}

// lookup returns the value stored under name, treating JSON null as absent.
func lookup(s *structpb.Struct, name string) (*structpb.Value, bool) {
	value, ok := s.GetFields()[name]
	if !ok || value == nil {
		return nil, false
	}

	if _, isNull := value.GetKind().(*structpb.Value_NullValue); isNull {
		return nil, false
	}

	return value, true
}

// requiredBool reads a boolean field that must be present.
func requiredBool(s *structpb.Struct, name string) (bool, error) {
	value, ok := lookup(s, name)
	if !ok {
		return false, fmt.Errorf("%w: %s", ErrMissingField, name)
	}

	kind, ok := value.GetKind().(*structpb.Value_BoolValue)
	if !ok {
		return false, fmt.Errorf("%w: %s is not a boolean", ErrFieldType, name)
	}

	return kind.BoolValue, nil
}

// optionalString reads a string field, returning "" when absent.
func optionalString(s *structpb.Struct, name string) (string, error) {
	value, ok := lookup(s, name)
	if !ok {
		return "", nil
	}

	kind, ok := value.GetKind().(*structpb.Value_StringValue)
	if !ok {
		return "", fmt.Errorf("%w: %s is not a string", ErrFieldType, name)
	}

	return kind.StringValue, nil
}

// optionalTime reads an RFC 3339 timestamp field, returning the zero time when absent.
func optionalTime(s *structpb.Struct, name string) (time.Time, error) {
	raw, err := optionalString(s, name)
	if err != nil || raw == "" {
		return time.Time{}, err
	}

	parsed, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s: %w", ErrFieldType, name, err)
	}

	return parsed, nil
}

// optionalActor reads a nested actor object, returning nil when absent.
func optionalActor(s *structpb.Struct, name string) (*SystemActor, error) {
	value, ok := lookup(s, name)
	if !ok {
		return nil, nil //nolint:nilnil // An absent actor is not an error.
	}

	kind, ok := value.GetKind().(*structpb.Value_StructValue)
	if !ok {
		return nil, fmt.Errorf("%w: %s is not an object", ErrFieldType, name)
	}

	hostname, err := optionalString(kind.StructValue, FieldHostname)
	if err != nil {
		return nil, err
	}

	username, err := optionalString(kind.StructValue, FieldUsername)
	if err != nil {
		return nil, err
	}

	return &SystemActor{
		Hostname: hostname,
		Username: username,
	}, nil
}
