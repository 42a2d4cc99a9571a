package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"testing"
)

func runCLI(t *testing.T, args []string) (stdout []byte, stderr []byte, err error) {
	t.Helper()

	cmd := NewRootCmd()

	var outBuf bytes.Buffer
	var errBuf bytes.Buffer
	cmd.SetOut(&outBuf)
	cmd.SetErr(&errBuf)
	cmd.SetArgs(args)

	e := cmd.Execute()
	return outBuf.Bytes(), errBuf.Bytes(), e
}

func mustRunJSON(t *testing.T, args ...string) map[string]any {
	t.Helper()
	stdout, stderr, err := runCLI(t, args)
	if err != nil {
		t.Fatalf("command failed: stocktake %v\nerr: %v\nstderr:\n%s\nstdout:\n%s", args, err, string(stderr), string(stdout))
	}
	var env map[string]any
	if err := json.Unmarshal(stdout, &env); err != nil {
		t.Fatalf("unmarshal stdout as json envelope: %v\nstdout:\n%s\nargs: %v", err, string(stdout), args)
	}
	if _, ok := env["data"]; !ok {
		t.Fatalf("expected JSON envelope to contain data key; got: %v\nstdout:\n%s", env, string(stdout))
	}
	return env
}

func dataMap(t *testing.T, env map[string]any) map[string]any {
	t.Helper()
	data, ok := env["data"].(map[string]any)
	if !ok {
		t.Fatalf("expected data object; got: %#v", env["data"])
	}
	return data
}

func TestItemsLifecycle(t *testing.T) {
	dir := t.TempDir()

	added := mustRunJSON(t, "--dir", dir, "items", "add", "--name", "AA Battery", "--quantity", "12", "--barcode", "4006381333931")
	item, _ := dataMap(t, added)["item"].(map[string]any)
	id, _ := item["id"].(float64)
	if id <= 0 {
		t.Fatalf("expected items add to return an id; got: %#v", added["data"])
	}
	idArg := fmt.Sprintf("%d", int64(id))

	mustRunJSON(t, "--dir", dir, "items", "add", "--name", "Stapler", "--quantity", "2")

	listed := mustRunJSON(t, "--dir", dir, "items", "list")
	items, _ := dataMap(t, listed)["items"].([]any)
	if len(items) != 2 {
		t.Fatalf("expected 2 items; got: %#v", listed["data"])
	}

	filtered := mustRunJSON(t, "--dir", dir, "items", "list", "-q", "batt")
	items, _ = dataMap(t, filtered)["items"].([]any)
	if len(items) != 1 {
		t.Fatalf("expected 1 filtered item; got: %#v", filtered["data"])
	}

	updated := mustRunJSON(t, "--dir", dir, "items", "set", idArg, "--quantity", "8")
	item, _ = dataMap(t, updated)["item"].(map[string]any)
	if qty, _ := item["quantity"].(float64); qty != 8 {
		t.Fatalf("expected quantity 8 after set; got: %#v", updated["data"])
	}
	if name, _ := item["name"].(string); name != "AA Battery" {
		t.Fatalf("set must not touch unspecified fields; got: %#v", updated["data"])
	}

	mustRunJSON(t, "--dir", dir, "items", "delete", idArg)
	listed = mustRunJSON(t, "--dir", dir, "items", "list")
	items, _ = dataMap(t, listed)["items"].([]any)
	if len(items) != 1 {
		t.Fatalf("expected 1 item after delete; got: %#v", listed["data"])
	}

	events := mustRunJSON(t, "--dir", dir, "events", "--limit", "0")
	evs, _ := dataMap(t, events)["events"].([]any)
	if len(evs) < 4 {
		t.Fatalf("expected audit events for create/update/delete; got: %#v", events["data"])
	}
}

func TestItemsAddRejectsInvalidFields(t *testing.T) {
	dir := t.TempDir()

	if _, _, err := runCLI(t, []string{"--dir", dir, "items", "add", "--name", "", "--quantity", "3"}); err == nil {
		t.Fatalf("expected empty name to be rejected")
	}
	if _, _, err := runCLI(t, []string{"--dir", dir, "items", "add", "--name", "Widget", "--quantity", "0"}); err == nil {
		t.Fatalf("expected non-positive quantity to be rejected")
	}

	listed := mustRunJSON(t, "--dir", dir, "items", "list")
	items, _ := dataMap(t, listed)["items"].([]any)
	if len(items) != 0 {
		t.Fatalf("rejected adds must not write; got: %#v", listed["data"])
	}
}

func TestItemsSetUnknownIDFails(t *testing.T) {
	dir := t.TempDir()
	if _, _, err := runCLI(t, []string{"--dir", dir, "items", "set", "42", "--quantity", "3"}); err == nil {
		t.Fatalf("expected unknown id to fail")
	}
}

func TestResolveKnownAndUnknown(t *testing.T) {
	dir := t.TempDir()
	mustRunJSON(t, "--dir", dir, "items", "add", "--name", "AA Battery", "--quantity", "12", "--barcode", "4006381333931")

	known := mustRunJSON(t, "--dir", dir, "resolve", "4006381333931")
	if action, _ := dataMap(t, known)["action"].(string); action != "update" {
		t.Fatalf("expected update action for known barcode; got: %#v", known["data"])
	}

	unknown := mustRunJSON(t, "--dir", dir, "resolve", "0000000000000")
	data := dataMap(t, unknown)
	if action, _ := data["action"].(string); action != "create" {
		t.Fatalf("expected create action for unknown barcode; got: %#v", unknown["data"])
	}
	item, _ := data["item"].(map[string]any)
	if code, _ := item["barcode"].(string); code != "0000000000000" {
		t.Fatalf("expected the scanned code prefilled; got: %#v", unknown["data"])
	}
}
