package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"

	"github.com/spf13/cobra"
)

var (
	from  string
	to    string
	value float64
	fee   float64
)

// sendCmd represents the send command
var sendCmd = &cobra.Command{
	Use:   "send",
	Short: "Send a transaction to the node's mempool.",
	Run:   sendRun,
}

func init() {
	rootCmd.AddCommand(sendCmd)
	sendCmd.Flags().StringVarP(&from, "from", "f", "", "Account sending the value.")
	sendCmd.Flags().StringVarP(&to, "to", "t", "", "Account receiving the value.")
	sendCmd.Flags().Float64VarP(&value, "value", "v", 0, "Value to send.")
	sendCmd.Flags().Float64VarP(&fee, "fee", "c", 0.001, "Fee paid to the miner.")
}

func sendRun(cmd *cobra.Command, args []string) {
	userTx := struct {
		From  string  `json:"from"`
		To    string  `json:"to"`
		Value float64 `json:"value"`
		Fee   float64 `json:"fee"`
	}{
		From:  from,
		To:    to,
		Value: value,
		Fee:   fee,
	}

	data, err := json.Marshal(userTx)
	if err != nil {
		log.Fatal(err)
	}

	resp, err := http.Post(fmt.Sprintf("%s/v1/tx/add", url), "application/json", bytes.NewBuffer(data))
	if err != nil {
		log.Fatal(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(string(body))
}
