package importer

import (
	"context"
	"strings"
	"time"

	eth2client "github.com/attestantio/go-eth2-client"
	"github.com/attestantio/go-eth2-client/api"
	"github.com/attestantio/go-eth2-client/http"
	"github.com/attestantio/go-eth2-client/spec"
	"github.com/attestantio/go-eth2-client/spec/phase0"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// Provider is the subset of the beacon node API the importer reads from.
// Methods return a nil value and no error when the upstream has nothing for the id.
type Provider interface {
	BeaconStateRoot(ctx context.Context, stateID string) (*phase0.Root, error)
	BeaconState(ctx context.Context, stateID string) (*spec.VersionedBeaconState, error)
	SignedBeaconBlock(ctx context.Context, blockID string) (*spec.VersionedSignedBeaconBlock, error)
}

// BeaconClient reads states and blocks from an upstream beacon node over its HTTP API.
type BeaconClient struct {
	endpoint string
	headers  map[string]string
	timeout  time.Duration
	client   eth2client.Service
}

// NewBeaconClient connects to the beacon node at endpoint.
func NewBeaconClient(ctx context.Context, endpoint string, timeout time.Duration, headers map[string]string) (*BeaconClient, error) {
	bc := &BeaconClient{
		endpoint: endpoint,
		headers:  headers,
		timeout:  timeout,
	}
	params := []http.Parameter{
		http.WithAddress(endpoint),
		http.WithTimeout(timeout),
		http.WithLogLevel(zerolog.Disabled),
		http.WithCustomSpecSupport(true),
	}
	if len(headers) > 0 {
		params = append(params, http.WithExtraHeaders(headers))
	}
	svc, err := http.New(ctx, params...)
	if err != nil {
		return nil, errors.Wrap(err, "could not create beacon node client")
	}
	bc.client = svc
	return bc, nil
}

// BeaconStateRoot returns the root of the state identified by stateID.
func (bc *BeaconClient) BeaconStateRoot(ctx context.Context, stateID string) (*phase0.Root, error) {
	provider, ok := bc.client.(eth2client.BeaconStateRootProvider)
	if !ok {
		return nil, errors.New("beacon node client does not provide state roots")
	}
	result, err := provider.BeaconStateRoot(ctx, &api.BeaconStateRootOpts{State: stateID})
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return result.Data, nil
}

// BeaconState returns the state identified by stateID.
func (bc *BeaconClient) BeaconState(ctx context.Context, stateID string) (*spec.VersionedBeaconState, error) {
	provider, ok := bc.client.(eth2client.BeaconStateProvider)
	if !ok {
		return nil, errors.New("beacon node client does not provide states")
	}
	result, err := provider.BeaconState(ctx, &api.BeaconStateOpts{State: stateID})
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return result.Data, nil
}

// SignedBeaconBlock returns the block identified by blockID.
func (bc *BeaconClient) SignedBeaconBlock(ctx context.Context, blockID string) (*spec.VersionedSignedBeaconBlock, error) {
	provider, ok := bc.client.(eth2client.SignedBeaconBlockProvider)
	if !ok {
		return nil, errors.New("beacon node client does not provide blocks")
	}
	result, err := provider.SignedBeaconBlock(ctx, &api.SignedBeaconBlockOpts{Block: blockID})
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return result.Data, nil
}

func isNotFound(err error) bool {
	return strings.Contains(err.Error(), "failed with status 404")
}
