package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"time"

	"birdai/internal/domain"

	"go.opentelemetry.io/otel/trace"
)

const suiDefaultRPCURL = "https://fullnode.mainnet.sui.io:443"

// SuiProvider reads network stats from a Sui full node over JSON-RPC.
// Same fail-closed contract as the CoinGecko provider: upstream trouble is
// logged and a canned stats record is returned.
type SuiProvider struct {
	client  *http.Client
	rpcURL  string
	tracer  trace.Tracer
	limiter *RateLimiter
	now     func() time.Time
}

func NewSuiProvider(tracer trace.Tracer, rpcURL string) *SuiProvider {
	if rpcURL == "" {
		rpcURL = suiDefaultRPCURL
	}
	return &SuiProvider{
		client:  &http.Client{Timeout: 15 * time.Second},
		rpcURL:  rpcURL,
		tracer:  tracer,
		limiter: NewRateLimiter(10, 3*time.Second),
		now:     time.Now,
	}
}

// NetworkStats returns current supply, checkpoint height, and gas price.
func (p *SuiProvider) NetworkStats(ctx context.Context) domain.SuiNetworkStats {
	ctx, span := p.tracer.Start(ctx, "sui.network-stats")
	defer span.End()

	stats, err := p.fetchNetworkStats(ctx)
	if err != nil {
		log.Printf("sui rpc unavailable, serving fallback: %v", err)
		return fallbackSuiStats(p.now().UTC())
	}
	return stats
}

func (p *SuiProvider) fetchNetworkStats(ctx context.Context) (domain.SuiNetworkStats, error) {
	supply, err := p.callUint(ctx, "suix_getTotalSupply", []any{"0x2::sui::SUI"}, "value")
	if err != nil {
		return domain.SuiNetworkStats{}, fmt.Errorf("total supply: %w", err)
	}
	checkpoint, err := p.callUint(ctx, "sui_getLatestCheckpointSequenceNumber", nil, "")
	if err != nil {
		return domain.SuiNetworkStats{}, fmt.Errorf("latest checkpoint: %w", err)
	}
	gasPrice, err := p.callUint(ctx, "suix_getReferenceGasPrice", nil, "")
	if err != nil {
		return domain.SuiNetworkStats{}, fmt.Errorf("reference gas price: %w", err)
	}

	return domain.SuiNetworkStats{
		TotalSupplyMIST:   supply,
		CheckpointSeq:     checkpoint,
		ReferenceGasPrice: gasPrice,
		Context:           "live sui full-node data",
		Timestamp:         p.now().UTC(),
	}, nil
}

// callUint performs one JSON-RPC call and decodes a numeric result. Sui
// returns large numbers as decimal strings; field selects a key when the
// result is an object rather than a bare value.
func (p *SuiProvider) callUint(ctx context.Context, method string, params []any, field string) (uint64, error) {
	raw, err := p.call(ctx, method, params)
	if err != nil {
		return 0, err
	}

	if field != "" {
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(raw, &obj); err != nil {
			return 0, fmt.Errorf("decode %s result: %w", method, err)
		}
		inner, ok := obj[field]
		if !ok {
			return 0, fmt.Errorf("decode %s result: missing field %q", method, field)
		}
		raw = inner
	}

	var asString string
	if err := json.Unmarshal(raw, &asString); err == nil {
		n, err := strconv.ParseUint(asString, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("decode %s result %q: %w", method, asString, err)
		}
		return n, nil
	}

	var asNumber uint64
	if err := json.Unmarshal(raw, &asNumber); err != nil {
		return 0, fmt.Errorf("decode %s result: %w", method, err)
	}
	return asNumber, nil
}

func (p *SuiProvider) call(ctx context.Context, method string, params []any) (json.RawMessage, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}
	if params == nil {
		params = []any{}
	}

	payload, err := json.Marshal(map[string]any{
		"jsonrpc": "2.0",
		"id":      1,
		"method":  method,
		"params":  params,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.rpcURL, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("sui rpc error %d: %s", resp.StatusCode, string(body))
	}

	var rpcResp struct {
		Result json.RawMessage `json:"result"`
		Error  *struct {
			Code    int    `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&rpcResp); err != nil {
		return nil, fmt.Errorf("decode rpc response: %w", err)
	}
	if rpcResp.Error != nil {
		return nil, fmt.Errorf("sui rpc error %d: %s", rpcResp.Error.Code, rpcResp.Error.Message)
	}
	return rpcResp.Result, nil
}
