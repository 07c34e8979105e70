package protocol

import (
	"fmt"

	json "github.com/goccy/go-json"
)

// Command names carried in envelope headers.
type Command string

const (
	CmdBuild           Command = "build"
	CmdDeploy          Command = "deploy"
	CmdImageImport     Command = "image.import"
	CmdImageDestroy    Command = "image.destroy"
	CmdContainerStop   Command = "container.stop"
	CmdContainerStatus Command = "container.status"
	CmdStatus          Command = "status"
	CmdShutdown        Command = "shutdown"

	// Response-only commands.
	CmdOK    Command = "ok"
	CmdError Command = "error"
)

// Lifecycle states reported for a container.
type ContainerState string

const (
	ContainerRunning    ContainerState = "running"
	ContainerStopped    ContainerState = "stopped"
	ContainerNotCreated ContainerState = "not-created"
)

// Wire framing for a single request or response message.
type Envelope struct {
	Command Command         `json:"command"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Serializes a command and payload into an envelope.
func Encode(cmd Command, payload any) ([]byte, error) {
	env := Envelope{Command: cmd}

	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encode %s payload: %w", cmd, err)
		}
		env.Payload = data
	}

	return json.Marshal(env)
}

// Deserializes an envelope, returning the header and the raw payload for
// command-specific decoding.
func Decode(data []byte) (Envelope, json.RawMessage, error) {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return Envelope{}, nil, fmt.Errorf("decode envelope: %w", err)
	}
	if env.Command == "" {
		return Envelope{}, nil, fmt.Errorf("decode envelope: missing command")
	}
	return env, env.Payload, nil
}

// Decodes a raw payload into a concrete request or result type.
func DecodePayload[T any](payload json.RawMessage) (*T, error) {
	var v T
	if len(payload) == 0 {
		return &v, nil
	}
	if err := json.Unmarshal(payload, &v); err != nil {
		return nil, fmt.Errorf("decode payload: %w", err)
	}
	return &v, nil
}
