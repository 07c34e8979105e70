package protocol

import (
	"testing"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	data, err := Encode(CmdBuild, BuildRequest{ID: "b-1", Root: "/srv/quizhub"})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	env, payload, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if env.Command != CmdBuild {
		t.Errorf("Command = %q, want %q", env.Command, CmdBuild)
	}

	req, err := DecodePayload[BuildRequest](payload)
	if err != nil {
		t.Fatalf("DecodePayload: %v", err)
	}
	if req.ID != "b-1" || req.Root != "/srv/quizhub" {
		t.Errorf("payload = %+v", req)
	}
}

func TestEncodeNoPayload(t *testing.T) {
	data, err := Encode(CmdShutdown, nil)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	env, payload, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if env.Command != CmdShutdown {
		t.Errorf("Command = %q, want %q", env.Command, CmdShutdown)
	}
	if len(payload) != 0 {
		t.Errorf("payload = %q, want empty", payload)
	}
}

func TestDecodeMissingCommand(t *testing.T) {
	if _, _, err := Decode([]byte(`{"payload":{}}`)); err == nil {
		t.Fatal("Decode accepted an envelope without a command")
	}
}

func TestDecodeMalformed(t *testing.T) {
	if _, _, err := Decode([]byte(`{"command":`)); err == nil {
		t.Fatal("Decode accepted truncated JSON")
	}
}

func TestDecodePayloadEmpty(t *testing.T) {
	req, err := DecodePayload[ContainerStatusRequest](nil)
	if err != nil {
		t.Fatalf("DecodePayload: %v", err)
	}
	if req.Container != "" {
		t.Errorf("Container = %q, want zero value", req.Container)
	}
}
