package refdata

import (
	"fmt"
	"os"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
)

// Load reads a reference-data bundle from disk. Both native HCL and JSON
// bundles are accepted; the format is chosen by file extension, and both
// parse into the same attribute model.
func Load(path string) (*Bundle, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read reference bundle: %w", err)
	}

	parser := hclparse.NewParser()
	var file *hcl.File
	var diags hcl.Diagnostics
	if strings.HasSuffix(path, ".json") {
		file, diags = parser.ParseJSON(src, path)
	} else {
		file, diags = parser.ParseHCL(src, path)
	}
	if diags.HasErrors() {
		return nil, fmt.Errorf("parse reference bundle %s: %w", path, diags)
	}

	return decode(file.Body)
}

// decode translates the parsed body into a Bundle. All values are plain
// strings or nested maps of strings; nulls are treated as absent so JSON
// bundles may spell optional keys as null.
func decode(body hcl.Body) (*Bundle, error) {
	attrs, diags := body.JustAttributes()
	if diags.HasErrors() {
		return nil, fmt.Errorf("decode reference bundle: %w", diags)
	}

	bundle := &Bundle{Targets: make(map[string]TargetSet)}
	for name, attr := range attrs {
		val, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return nil, fmt.Errorf("evaluate %q: %w", name, diags)
		}

		switch name {
		case KeyReferenceGenome:
			bundle.ReferenceGenome = stringOrEmpty(val)
		case KeyBWAIndex:
			bundle.BWAIndex = stringOrEmpty(val)
		case KeyChrsizes:
			bundle.Chrsizes = stringOrEmpty(val)
		case KeyVEPDir:
			bundle.VEPDir = stringOrEmpty(val)
		case KeySwegeneCommon:
			bundle.SwegeneCommon = stringOrEmpty(val)
		case KeyTargets:
			targets, err := decodeTargets(val)
			if err != nil {
				return nil, err
			}
			bundle.Targets = targets
		default:
			return nil, fmt.Errorf("reference bundle has unknown key %q", name)
		}
	}
	return bundle, nil
}

// decodeTargets unpacks the per-capture-kit target map.
func decodeTargets(val cty.Value) (map[string]TargetSet, error) {
	if val.IsNull() {
		return map[string]TargetSet{}, nil
	}
	if !val.Type().IsObjectType() && !val.Type().IsMapType() {
		return nil, fmt.Errorf("targets must be a map of capture kit names to target sets")
	}

	targets := make(map[string]TargetSet)
	for kitName, kitVal := range val.AsValueMap() {
		if kitVal.IsNull() {
			continue
		}
		if !kitVal.Type().IsObjectType() && !kitVal.Type().IsMapType() {
			return nil, fmt.Errorf("targets entry %q must be a map of reference keys", kitName)
		}
		var ts TargetSet
		for key, v := range kitVal.AsValueMap() {
			switch key {
			case KeyTargetsBED:
				ts.TargetsBED = stringOrEmpty(v)
			case KeyTargetsIntervalList:
				ts.TargetsIntervalList = stringOrEmpty(v)
			case KeyCNVKitRef:
				ts.CNVKitRef = stringOrEmpty(v)
			case KeyMSISites:
				ts.MSISites = stringOrEmpty(v)
			default:
				return nil, fmt.Errorf("targets entry %q has unknown key %q", kitName, key)
			}
		}
		targets[kitName] = ts
	}
	return targets, nil
}

// stringOrEmpty converts a cty value to a string, mapping null to "".
func stringOrEmpty(val cty.Value) string {
	if val.IsNull() {
		return ""
	}
	converted, err := convert.Convert(val, cty.String)
	if err != nil || converted.IsNull() {
		return ""
	}
	return converted.AsString()
}
