package segm

import (
	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
)

// The FromAttributes converters decode a loosely-typed attribute map
// (e.g. a parsed JSON parameter file) over the toolbox defaults, so a
// partial map only overrides what it names.

func decodeAttributes(attrs map[string]interface{}, result interface{}, what string) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{TagName: "json", Result: result})
	if err != nil {
		return err
	}
	if err := decoder.Decode(attrs); err != nil {
		return errors.Wrapf(err, "decoding %s attributes", what)
	}
	return nil
}

// MeanShiftParamsFromAttributes decodes mean-shift parameters over the
// defaults.
func MeanShiftParamsFromAttributes(attrs map[string]interface{}) (*MeanShiftParams, error) {
	params := DefaultMeanShiftParams()
	if err := decodeAttributes(attrs, params, "mean-shift"); err != nil {
		return nil, err
	}
	return params, nil
}

// WatershedParamsFromAttributes decodes watershed parameters over the
// defaults.
func WatershedParamsFromAttributes(attrs map[string]interface{}) (*WatershedParams, error) {
	params := DefaultWatershedParams()
	if err := decodeAttributes(attrs, params, "watershed"); err != nil {
		return nil, err
	}
	return params, nil
}

// MProfilesParamsFromAttributes decodes morphological-profile parameters
// over the defaults.
func MProfilesParamsFromAttributes(attrs map[string]interface{}) (*MProfilesParams, error) {
	params := DefaultMProfilesParams()
	if err := decodeAttributes(attrs, params, "morphological-profile"); err != nil {
		return nil, err
	}
	return params, nil
}

// LSMSParamsFromAttributes decodes large-scale mean-shift parameters
// over the defaults.
func LSMSParamsFromAttributes(attrs map[string]interface{}) (*LSMSParams, error) {
	params := DefaultLSMSParams()
	if err := decodeAttributes(attrs, params, "large-scale mean-shift"); err != nil {
		return nil, err
	}
	return params, nil
}
