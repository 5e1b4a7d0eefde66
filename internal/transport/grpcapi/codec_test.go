package grpcapi

import (
	"strings"
	"testing"

	"google.golang.org/grpc/encoding"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

func TestJSONCodec_Registered(t *testing.T) {
	if c := encoding.GetCodec(codecName); c == nil {
		t.Fatalf("codec %q is not registered", codecName)
	}
}

func TestJSONCodec_PlainStruct(t *testing.T) {
	c := jsonCodec{}
	data, err := c.Marshal(&SessionRequest{SessionID: "abc"})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var got SessionRequest
	if err := c.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.SessionID != "abc" {
		t.Fatalf("expected id abc, got %q", got.SessionID)
	}
}

func TestJSONCodec_ProtoMessage(t *testing.T) {
	c := jsonCodec{}
	data, err := c.Marshal(&healthpb.HealthCheckResponse{Status: healthpb.HealthCheckResponse_SERVING})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(data), "SERVING") {
		t.Fatalf("expected enum name in protojson output, got %s", data)
	}

	var got healthpb.HealthCheckResponse
	if err := c.Unmarshal([]byte(`{"status":"NOT_SERVING","unknown":1}`), &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.GetStatus() != healthpb.HealthCheckResponse_NOT_SERVING {
		t.Fatalf("expected NOT_SERVING, got %v", got.GetStatus())
	}
}
