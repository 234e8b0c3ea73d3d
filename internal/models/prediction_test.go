package models

import (
	"encoding/json"
	"testing"
)

func TestTransactionInput_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    TransactionInput
		wantErr bool
	}{
		{
			name: "string amount",
			body: `{"card_number": "4111111111111111", "amount": "250.00"}`,
			want: TransactionInput{CardNumber: "4111111111111111", Amount: "250.00"},
		},
		{
			name: "number amount kept verbatim",
			body: `{"card_number": "4111111111111111", "amount": 250.00}`,
			want: TransactionInput{CardNumber: "4111111111111111", Amount: "250.00"},
		},
		{
			name: "negative number",
			body: `{"card_number": "4111", "amount": -5}`,
			want: TransactionInput{CardNumber: "4111", Amount: "-5"},
		},
		{
			name: "missing amount",
			body: `{"card_number": "4111"}`,
			want: TransactionInput{CardNumber: "4111"},
		},
		{
			name: "null amount",
			body: `{"card_number": "4111", "amount": null}`,
			want: TransactionInput{CardNumber: "4111"},
		},
		{
			name:    "boolean amount",
			body:    `{"card_number": "4111", "amount": true}`,
			wantErr: true,
		},
		{
			name:    "numeric card number",
			body:    `{"card_number": 4111, "amount": "1"}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got TransactionInput
			err := json.Unmarshal([]byte(tt.body), &got)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Unmarshal() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("Unmarshal() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestPredictionResult_JSON(t *testing.T) {
	data, err := json.Marshal(PredictionResult{FraudProbability: 0.5, IsValidCard: true})
	if err != nil {
		t.Fatal(err)
	}

	want := `{"is_fraudulent":false,"fraud_probability":0.5,"is_valid_card":true,"error_message":null}`
	if string(data) != want {
		t.Errorf("got %s, want %s", data, want)
	}
}

func TestPredictionRequest_OmitsTime(t *testing.T) {
	data, _ := json.Marshal(PredictionRequest{CardNumber: "4111", Amount: 1})
	if string(data) != `{"card_number":"4111","amount":1}` {
		t.Errorf("unexpected payload %s", data)
	}

	seconds := 0
	data, _ = json.Marshal(PredictionRequest{CardNumber: "4111", Amount: 1, Time: &seconds})
	if string(data) != `{"card_number":"4111","amount":1,"time":0}` {
		t.Errorf("time 0 must still be sent, got %s", data)
	}
}
