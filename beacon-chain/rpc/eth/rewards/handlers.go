package rewards

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	corerewards "github.com/prysmaticlabs/prysm-rewards/beacon-chain/core/rewards"
	"github.com/prysmaticlabs/prysm-rewards/consensus-types/primitives"
	"github.com/prysmaticlabs/prysm-rewards/network/httputil"
	"github.com/sirupsen/logrus"
	"go.opencensus.io/trace"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var log = logrus.WithField("prefix", "rewards")

const (
	AttestationRewardsPath   = "/eth/v1/beacon/rewards/attestations/{epoch}"
	SyncCommitteeRewardsPath = "/eth/v1/beacon/rewards/sync_committee/{block_id}"
)

// Server defines the HTTP handlers of the reward endpoints.
type Server struct {
	RewardFetcher RewardFetcher
}

// RegisterRoutes adds the reward endpoints to the router.
func (s *Server) RegisterRoutes(router *mux.Router) {
	router.HandleFunc(AttestationRewardsPath, s.AttestationRewards).Methods(http.MethodPost)
	router.HandleFunc(SyncCommitteeRewardsPath, s.SyncCommitteeRewards).Methods(http.MethodPost)
}

// AttestationRewards retrieves attestation reward info for validators specified by array of public keys or validator index.
// If no array is provided, return reward info for every validator.
func (s *Server) AttestationRewards(w http.ResponseWriter, r *http.Request) {
	ctx, span := trace.StartSpan(r.Context(), "rewards.AttestationRewards")
	defer span.End()

	epochStr := mux.Vars(r)["epoch"]
	if epochStr == "" {
		httputil.HandleError(w, "epoch is required in URL params", http.StatusBadRequest)
		return
	}
	epoch, err := strconv.ParseUint(epochStr, 10, 64)
	if err != nil {
		httputil.HandleError(w, "Invalid epoch: "+err.Error(), http.StatusBadRequest)
		return
	}
	validatorIds, ok := decodeValidatorIds(w, r)
	if !ok {
		return
	}

	res, err := s.RewardFetcher.ComputeAttestationRewards(ctx, primitives.Epoch(epoch), validatorIds)
	if err != nil {
		handleRewardError(w, "Could not compute attestation rewards", err)
		return
	}
	httputil.WriteJson(w, &AttestationRewardsResponse{
		Data: AttestationRewards{
			IdealRewards: idealRewardsToJson(res.IdealRewards),
			TotalRewards: totalRewardsToJson(res.TotalRewards),
		},
		ExecutionOptimistic: res.ExecutionOptimistic,
		Finalized:           res.Finalized,
	})
}

// SyncCommitteeRewards retrieves rewards info for sync committee members specified by array of public keys or validator index.
// If no array is provided, return reward info for every committee member.
func (s *Server) SyncCommitteeRewards(w http.ResponseWriter, r *http.Request) {
	ctx, span := trace.StartSpan(r.Context(), "rewards.SyncCommitteeRewards")
	defer span.End()

	blockId := mux.Vars(r)["block_id"]
	if blockId == "" {
		httputil.HandleError(w, "block_id is required in URL params", http.StatusBadRequest)
		return
	}
	validatorIds, ok := decodeValidatorIds(w, r)
	if !ok {
		return
	}

	res, err := s.RewardFetcher.ComputeSyncCommitteeRewards(ctx, blockId, validatorIds)
	if err != nil {
		handleRewardError(w, "Could not compute sync committee rewards", err)
		return
	}
	httputil.WriteJson(w, &SyncCommitteeRewardsResponse{
		Data:                syncCommitteeRewardsToJson(res.Rewards),
		ExecutionOptimistic: res.ExecutionOptimistic,
		Finalized:           res.Finalized,
	})
}

// decodeValidatorIds reads the optional JSON array of validator ids from the request body.
func decodeValidatorIds(w http.ResponseWriter, r *http.Request) ([]string, bool) {
	var validatorIds []string
	if r.Body == nil || r.Body == http.NoBody {
		return validatorIds, true
	}
	err := json.NewDecoder(r.Body).Decode(&validatorIds)
	switch {
	case errors.Is(err, io.EOF):
		return nil, true
	case err != nil:
		httputil.HandleError(w, "Could not decode validators: "+err.Error(), http.StatusBadRequest)
		return nil, false
	}
	return validatorIds, true
}

func handleRewardError(w http.ResponseWriter, msg string, err error) {
	switch corerewards.KindOf(err) {
	case corerewards.ErrNotFound:
		httputil.HandleError(w, msg+": "+err.Error(), http.StatusNotFound)
	case corerewards.ErrInvalid:
		httputil.HandleError(w, msg+": "+err.Error(), http.StatusBadRequest)
	default:
		log.WithError(err).Error(msg)
		httputil.HandleError(w, msg+": "+err.Error(), http.StatusInternalServerError)
	}
}
