package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gorewood/doctags/internal/output"
)

// copySample copies testdata/sample.yaml into the isolated working
// directory. It must run before isolate changes directory.
func copySample(t *testing.T) func(dir string) {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", "sample.yaml"))
	if err != nil {
		t.Fatalf("reading sample: %v", err)
	}
	return func(dir string) {
		writeFile(t, filepath.Join(dir, "sample.yaml"), string(data))
	}
}

func TestInspect_SampleJSON(t *testing.T) {
	install := copySample(t)
	install(isolate(t))

	stdout, _, err := executeCmd(t, "", "inspect", "sample.yaml", "--json")
	if err != nil {
		t.Fatalf("inspect error = %v", err)
	}

	var result struct {
		Shape   string `json:"shape"`
		Symbols []struct {
			Name      string `json:"name"`
			Kind      string `json:"kind"`
			Namespace string `json:"namespace"`
			Position  *struct {
				File string `json:"file"`
				Line int    `json:"line"`
			} `json:"position"`
			Comment string `json:"comment"`
			Depth   int    `json:"depth"`
		} `json:"symbols"`
	}
	if err := json.Unmarshal([]byte(stdout), &result); err != nil {
		t.Fatalf("output should be JSON: %v\n%s", err, stdout)
	}
	if result.Shape != "flat" || len(result.Symbols) != 23 {
		t.Fatalf("shape %q with %d symbols, want flat with 23", result.Shape, len(result.Symbols))
	}

	var types []string
	for _, s := range result.Symbols {
		if s.Depth == 0 {
			types = append(types, s.Namespace+"."+s.Name)
		}
	}
	want := []string{"vehicles.AbstractVehicle", "vehicles.Car", "vehicles.Car.Side", "vehicles.Vehicle", "people.Person"}
	if strings.Join(types, ",") != strings.Join(want, ",") {
		t.Errorf("types = %v, want %v", types, want)
	}

	car := result.Symbols[8]
	if car.Name != "Car" || car.Kind != "type" || car.Position == nil || car.Position.File != "Car.java" || car.Position.Line != 24 {
		t.Errorf("Car = %+v", car)
	}
	if car.Comment != "A Car represents a terrestrial link:Vehicle[]\nwith 4 wheels." {
		t.Errorf("Car comment = %q", car.Comment)
	}

	getDriverSide := result.Symbols[10]
	if getDriverSide.Name != "getDriverSide" || getDriverSide.Kind != "method" || getDriverSide.Depth != 1 || getDriverSide.Position != nil {
		t.Errorf("getDriverSide = %+v", getDriverSide)
	}
}

func TestInspect_SampleText(t *testing.T) {
	install := copySample(t)
	install(isolate(t))

	stdout, _, err := executeCmd(t, "", "inspect", "sample.yaml")
	if err != nil {
		t.Fatalf("inspect error = %v", err)
	}

	for _, want := range []string{
		"people.Person (type Person.java:24)\n  An interface to represent different kinds of People.\n",
		"  getName (method)\n    Gets the person's name.\n    @return the name of the person\n",
		"  LEFT (enum_constant)\n  RIGHT (enum_constant)\n",
		"23 symbols, flat input\n",
	} {
		if !strings.Contains(stdout, want) {
			t.Errorf("output missing %q:\n%s", want, stdout)
		}
	}
}

func TestInspect_Raw(t *testing.T) {
	install := copySample(t)
	install(isolate(t))

	stdout, _, err := executeCmd(t, "", "inspect", "sample.yaml", "--raw", "--json")
	if err != nil {
		t.Fatalf("inspect error = %v", err)
	}
	if !strings.Contains(stdout, `" Gets the person's name.\n @return the name of the person\n"`) {
		t.Errorf("raw comment not kept:\n%s", stdout)
	}
}

func TestInspect_GoSource(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, "src", "car.go"), "// Package vehicles models things that move.\npackage vehicles\n\n// Car is a road vehicle.\ntype Car struct {\n\tengine string\n}\n")

	stdout, _, err := executeCmd(t, "", "inspect", "src", "--unexported")
	if err != nil {
		t.Fatalf("inspect error = %v", err)
	}
	for _, want := range []string{"vehicles (package car.go:2)", "  Car (type car.go:5)", "    engine (field"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("output missing %q:\n%s", want, stdout)
		}
	}
}

func TestInspect_MissingInput(t *testing.T) {
	isolate(t)

	_, _, err := executeCmd(t, "", "inspect", "nope.yaml")
	if got := output.GetExitCode(err); got != output.ExitUserError {
		t.Errorf("exit code = %d, want %d", got, output.ExitUserError)
	}
}
