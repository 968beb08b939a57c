package node

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

func confirmDelete(dbPath string) (bool, error) {
	reader := bufio.NewReader(os.Stdin)

	log.Warnf("This will delete the rewards database stored at %s. "+
		"Your database backups will not be removed - do you want to proceed? (Y/N)", dbPath)

	for {
		fmt.Print(">> ")

		line, _, err := reader.ReadLine()
		if err != nil {
			return false, err
		}
		lineInput := strings.ToUpper(strings.TrimSpace(string(line)))
		if lineInput != "Y" && lineInput != "N" {
			log.Errorf("Invalid option of %s chosen, enter Y/N", line)
			continue
		}
		if lineInput == "Y" {
			return true, nil
		}
		log.Info("Database will not be deleted. No changes have been made.")
		return false, nil
	}
}
