package mainchain

import (
	"context"
	"encoding/base32"
	"encoding/hex"
	"fmt"
	"io/ioutil"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/pkg/errors"
	"github.com/tendermint/tendermint/crypto/tmhash"
	"github.com/tendermint/tendermint/libs/log"
	"github.com/tidwall/gjson"
	"go.uber.org/ratelimit"
)

// catapult transaction types
const (
	TransferType           = 0x4154
	ModifyMultisigType     = 0x4155
	AggregateCompleteType  = 0x4141
	AggregateBondedType    = 0x4241
	AddCosignatoryModifier = 0
	DelCosignatoryModifier = 1

	// XPXMosaicID is the hex id of the ProximaX native currency
	XPXMosaicID = "0DC67FBE1CAD29E3"

	defaultPageSize = 100
)

var ErrNotFound = errors.New("not found on mainchain")

type Config struct {
	URL               string
	RequestsPerSecond int
	RetryMax          int
	RetryWaitMin      time.Duration
	RetryWaitMax      time.Duration
}

func DefaultConfig(url string) Config {
	return Config{
		URL:               url,
		RequestsPerSecond: 10,
		RetryMax:          4,
		RetryWaitMin:      500 * time.Millisecond,
		RetryWaitMax:      5 * time.Second,
	}
}

// Client reads accounts and transactions from a ProximaX REST gateway
type Client struct {
	baseURL *url.URL
	http    *retryablehttp.Client
	limiter ratelimit.Limiter
	logger  log.Logger
}

type retryableHTTPLogger struct {
	inner log.Logger
}

func (r retryableHTTPLogger) Error(msg string, keyvals ...interface{}) {
	r.inner.Error(msg, keyvals...)
}

func (r retryableHTTPLogger) Info(msg string, keyvals ...interface{}) {
	r.inner.Info(msg, keyvals...)
}

func (r retryableHTTPLogger) Warn(msg string, keyvals ...interface{}) {
	r.inner.Info(msg, keyvals...)
}

func (r retryableHTTPLogger) Debug(msg string, keyvals ...interface{}) {
	r.inner.Debug(msg, keyvals...)
}

func NewClient(cfg Config, logger log.Logger) (*Client, error) {
	baseURL, err := url.Parse(cfg.URL)
	if err != nil {
		return nil, errors.Wrapf(err, "parse mainchain url %q", cfg.URL)
	}
	if baseURL.Scheme == "" {
		baseURL.Scheme = "http"
	}
	if cfg.RequestsPerSecond <= 0 {
		return nil, errors.Errorf("requests per second should be positive, got %d", cfg.RequestsPerSecond)
	}

	httpClient := retryablehttp.NewClient()
	httpClient.RetryMax = cfg.RetryMax
	httpClient.RetryWaitMin = cfg.RetryWaitMin
	httpClient.RetryWaitMax = cfg.RetryWaitMax
	httpClient.Backoff = retryablehttp.LinearJitterBackoff
	httpClient.Logger = retryableHTTPLogger{inner: logger}

	return &Client{
		baseURL: baseURL,
		http:    httpClient,
		limiter: ratelimit.New(cfg.RequestsPerSecond),
		logger:  logger,
	}, nil
}

func (c *Client) URL() string {
	return c.baseURL.String()
}

func (c *Client) get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	u := *c.baseURL
	u.Path = strings.TrimRight(u.Path, "/") + path
	u.RawQuery = query.Encode()

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, errors.Wrap(err, "create request")
	}
	req.Header.Set("Accept", "application/json")

	c.limiter.Take()
	res, err := c.http.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "GET %s", path)
	}
	defer res.Body.Close()

	data, err := ioutil.ReadAll(res.Body)
	if err != nil {
		return nil, errors.Wrap(err, "read response body")
	}
	switch res.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, errors.Wrapf(ErrNotFound, "GET %s", path)
	default:
		c.logger.Debug("mainchain request failed", "path", path, "status", res.Status, "body", string(data))
		return nil, errors.Errorf("GET %s: status %s", path, res.Status)
	}
	if !gjson.ValidBytes(data) {
		return nil, errors.Errorf("GET %s: invalid json response", path)
	}
	return data, nil
}

// Mosaic is an amount of a single mosaic id
type Mosaic struct {
	ID     string
	Amount uint64
}

// Transfer is a plain transfer, either standalone or inside an aggregate
type Transfer struct {
	// deposit id: the announced tx hash for a standalone transfer, a hash of
	// the aggregate hash and the inner index otherwise
	Hash string
	// hash of the announced transaction
	TxHash    string
	Height    uint64
	Signer    string
	Recipient string
	Mosaics   []Mosaic
	Message   string
}

func (t Transfer) Amount(mosaicID string) uint64 {
	var total uint64
	for _, m := range t.Mosaics {
		if strings.EqualFold(m.ID, mosaicID) {
			total += m.Amount
		}
	}
	return total
}

// Modification is a multisig cosignatory change
type Modification struct {
	Hash     string
	Height   uint64
	Multisig string
	Added    []string
	Removed  []string
}

// Transaction is a top level mainchain transaction flattened into what the
// relayer looks at
type Transaction struct {
	Hash          string
	Height        uint64
	Type          int64
	Signer        string
	Cosigners     []string
	Transfers     []Transfer
	Modifications []Modification
}

type Status struct {
	Hash   string
	Group  string
	Status string
}

func (s Status) Confirmed() bool {
	return s.Group == "confirmed" && s.Status == "Success"
}

// Transactions returns the latest confirmed transactions of an account
func (c *Client) Transactions(ctx context.Context, account string) ([]Transaction, error) {
	query := url.Values{}
	query.Set("pageSize", fmt.Sprint(defaultPageSize))
	data, err := c.get(ctx, "/account/"+account+"/transactions", query)
	if err != nil {
		return nil, err
	}
	return c.parseTransactions(gjson.ParseBytes(data))
}

// PartialTransactions returns the aggregate bonded transactions of an account
// still waiting for cosignatures
func (c *Client) PartialTransactions(ctx context.Context, publicKey string) ([]Transaction, error) {
	data, err := c.get(ctx, "/account/"+publicKey+"/transactions/partial", nil)
	if err != nil {
		return nil, err
	}
	return c.parseTransactions(gjson.ParseBytes(data))
}

func (c *Client) TransactionStatus(ctx context.Context, hash string) (Status, error) {
	data, err := c.get(ctx, "/transaction/"+hash+"/status", nil)
	if err != nil {
		return Status{}, err
	}
	res := gjson.ParseBytes(data)
	return Status{
		Hash:   strings.ToUpper(res.Get("hash").String()),
		Group:  res.Get("group").String(),
		Status: res.Get("status").String(),
	}, nil
}

// AccountPublicKey returns the public key known for address, or an empty
// string if the account never announced one
func (c *Client) AccountPublicKey(ctx context.Context, address string) (string, error) {
	data, err := c.get(ctx, "/account/"+address, nil)
	if err != nil {
		return "", err
	}
	pk := strings.ToUpper(gjson.GetBytes(data, "account.publicKey").String())
	if strings.Trim(pk, "0") == "" {
		return "", nil
	}
	return pk, nil
}

// parseTransactions skips the entries it cannot read so one odd transaction
// does not hide the rest of the page
func (c *Client) parseTransactions(res gjson.Result) ([]Transaction, error) {
	if !res.IsArray() {
		return nil, errors.New("expected a transaction list")
	}
	var txs []Transaction
	res.ForEach(func(_, item gjson.Result) bool {
		tx, err := parseTransaction(item)
		if err != nil {
			c.logger.Error("skip unreadable mainchain transaction", "hash", item.Get("meta.hash").String(), "err", err)
			return true
		}
		txs = append(txs, tx)
		return true
	})
	return txs, nil
}

func parseTransaction(item gjson.Result) (Transaction, error) {
	meta := item.Get("meta")
	body := item.Get("transaction")
	tx := Transaction{
		Hash:   strings.ToUpper(meta.Get("hash").String()),
		Height: parseUint64(meta.Get("height")),
		Type:   body.Get("type").Int(),
		Signer: strings.ToUpper(body.Get("signer").String()),
	}
	if tx.Hash == "" {
		return tx, errors.New("transaction without hash")
	}
	body.Get("cosignatures").ForEach(func(_, cosig gjson.Result) bool {
		tx.Cosigners = append(tx.Cosigners, strings.ToUpper(cosig.Get("signer").String()))
		return true
	})

	switch tx.Type {
	case AggregateCompleteType, AggregateBondedType:
		var err error
		index := 0
		body.Get("transactions").ForEach(func(_, inner gjson.Result) bool {
			err = tx.addInner(inner.Get("transaction"), DepositID(tx.Hash, index))
			index++
			return err == nil
		})
		if err != nil {
			return tx, err
		}
	default:
		if err := tx.addInner(body, tx.Hash); err != nil {
			return tx, err
		}
	}
	return tx, nil
}

// DepositID names the transfer at index inside the aggregate txHash. Every
// relayer derives the same 64 hex characters, so it serves as the claim id.
func DepositID(txHash string, index int) string {
	sum := tmhash.Sum([]byte(fmt.Sprintf("%s|%d", strings.ToUpper(txHash), index)))
	return strings.ToUpper(hex.EncodeToString(sum))
}

func (tx *Transaction) addInner(body gjson.Result, id string) error {
	signer := strings.ToUpper(body.Get("signer").String())
	switch body.Get("type").Int() {
	case TransferType:
		recipient, err := hexToAddress(body.Get("recipient").String())
		if err != nil {
			return err
		}
		message, err := decodeMessage(body.Get("message.payload").String())
		if err != nil {
			return err
		}
		t := Transfer{
			Hash:      id,
			TxHash:    tx.Hash,
			Height:    tx.Height,
			Signer:    signer,
			Recipient: recipient,
			Message:   message,
		}
		body.Get("mosaics").ForEach(func(_, m gjson.Result) bool {
			t.Mosaics = append(t.Mosaics, Mosaic{
				ID:     fmt.Sprintf("%016X", parseUint64(m.Get("id"))),
				Amount: parseUint64(m.Get("amount")),
			})
			return true
		})
		tx.Transfers = append(tx.Transfers, t)
	case ModifyMultisigType:
		m := Modification{Hash: tx.Hash, Height: tx.Height, Multisig: signer}
		body.Get("modifications").ForEach(func(_, mod gjson.Result) bool {
			key := strings.ToUpper(mod.Get("cosignatoryPublicKey").String())
			if mod.Get("type").Int() == DelCosignatoryModifier {
				m.Removed = append(m.Removed, key)
			} else {
				m.Added = append(m.Added, key)
			}
			return true
		})
		tx.Modifications = append(tx.Modifications, m)
	}
	return nil
}

// parseUint64 reads catapult uint64 values, sent as [lower, higher] uint32 pairs
// by the REST gateway, or as plain numbers by newer gateways.
func parseUint64(v gjson.Result) uint64 {
	if v.IsArray() {
		parts := v.Array()
		if len(parts) != 2 {
			return 0
		}
		return parts[1].Uint()<<32 | parts[0].Uint()
	}
	return v.Uint()
}

// hexToAddress turns the hex encoded address bytes of the REST gateway into the
// plain base32 form used on the peg zone
func hexToAddress(h string) (string, error) {
	if h == "" {
		return "", nil
	}
	bz, err := hex.DecodeString(h)
	if err != nil {
		return "", errors.Wrapf(err, "invalid recipient %q", h)
	}
	return base32.StdEncoding.EncodeToString(bz), nil
}

func decodeMessage(payload string) (string, error) {
	if payload == "" {
		return "", nil
	}
	bz, err := hex.DecodeString(payload)
	if err != nil {
		return "", errors.Wrapf(err, "invalid message payload %q", payload)
	}
	return string(bz), nil
}

// EncodeMessage is the payload form of a plain text message
func EncodeMessage(message string) string {
	return strings.ToUpper(hex.EncodeToString([]byte(message)))
}
