package testutil

import (
	"encoding/json"
	"os"
	"testing"
)

func TestDoc_JSON(t *testing.T) {
	d := NewDoc(1).
		AddEgo(EgoStep(0, 1, 2, 0, 0, 5, 0, 0)).
		AddObjects(Object(7, 0, 3, 10, 0, 0, 0))

	var got map[string][]map[string]any
	if err := json.Unmarshal(d.JSON(t), &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(got["ego_vehicle_systems"]) != 1 || got["ego_vehicle_systems"][0]["status_adf"] != 1.0 {
		t.Errorf("systems = %v", got["ego_vehicle_systems"])
	}
	if len(got["ego_vehicle_dynamics"]) != 1 {
		t.Errorf("dynamics = %v", got["ego_vehicle_dynamics"])
	}
	if obj := got["dynamic_objects"][0]; obj["internal_id"] != 7.0 || obj["length"] != DefaultObjectLength {
		t.Errorf("object = %v", obj)
	}
}

func TestDoc_OmitSections(t *testing.T) {
	d := NewDoc(0)
	d.OmitDynamics = true
	d.OmitObjects = true

	var got map[string]any
	if err := json.Unmarshal(d.JSON(t), &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if _, ok := got["ego_vehicle_dynamics"]; ok {
		t.Error("ego_vehicle_dynamics should be omitted")
	}
	if _, ok := got["dynamic_objects"]; ok {
		t.Error("dynamic_objects should be omitted")
	}
}

func TestDoc_WriteFile(t *testing.T) {
	path := NewDoc(0).WriteFile(t, t.TempDir(), "s.json")
	_, err := os.Stat(path)
	AssertNoError(t, err)
}
