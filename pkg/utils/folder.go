package utils

import (
	"fmt"
	"os"
)

// CreateFolder creates every given folder (and parents) if it does not exist.
func CreateFolder(folderPath ...string) error {
	for _, folder := range folderPath {
		err := os.MkdirAll(folder, os.ModePerm)
		if err != nil {
			return fmt.Errorf("error when create folder %s: %v", folder, err)
		}
	}
	return nil
}
