package schema

import (
	"fmt"
	"reflect"

	"github.com/go-viper/mapstructure/v2"
)

// stringerHook lets structured values already placed in the options (such as a
// parsed platform) decode into string fields.
func stringerHook(_ reflect.Type, to reflect.Type, data any) (any, error) {
	if to.Kind() != reflect.String {
		return data, nil
	}
	if s, ok := data.(fmt.Stringer); ok {
		return s.String(), nil
	}
	return data, nil
}

func decode(input any, output any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       stringerHook,
		WeaklyTypedInput: true,
		Result:           output,
	})
	if err != nil {
		return err
	}
	return decoder.Decode(input)
}

// DecodeHost decodes one HOSTS entry into its typed view.
func DecodeHost(entry map[string]any) (Host, error) {
	var host Host
	if err := decode(entry, &host); err != nil {
		return Host{}, err
	}
	return host, nil
}

// DecodeOptions decodes the resolved options into their typed view.
func DecodeOptions(options map[string]any) (Options, error) {
	var opts Options
	if err := decode(options, &opts); err != nil {
		return Options{}, err
	}
	return opts, nil
}
