package cli

import (
	"encoding/json"
	"fmt"
	"io"
)

func printMessageWithData(w io.Writer, message string, data any) error {
	dump, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "%s%s\n", message, dump)
	return err
}

func printError(w io.Writer, err any) {
	fmt.Fprintf(w, "ERROR: %v\n", err)
}

func errorMissingFlag(name string) error {
	return fmt.Errorf("--%s is required", name)
}
