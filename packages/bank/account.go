package bank

import (
	"github.com/cockroachdb/errors"
	"github.com/iotaledger/hive.go/marshalutil"
	"github.com/iotaledger/hive.go/stringify"
)

// region Account //////////////////////////////////////////////////////////////////////////////////////////////////////

// Account is the on-chain record of a single account.
type Account struct {
	Lamports   uint64
	Data       []byte
	Owner      Pubkey
	Executable bool
	RentEpoch  Epoch
}

// Clone returns a deep copy of the Account.
func (a Account) Clone() Account {
	if a.Data != nil {
		a.Data = append(make([]byte, 0, len(a.Data)), a.Data...)
	}

	return a
}

// String returns a human-readable version of the Account.
func (a Account) String() string {
	return stringify.Struct("Account",
		stringify.StructField("Lamports", a.Lamports),
		stringify.StructField("DataLength", len(a.Data)),
		stringify.StructField("Owner", a.Owner),
		stringify.StructField("Executable", a.Executable),
		stringify.StructField("RentEpoch", a.RentEpoch),
	)
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region VoteState ////////////////////////////////////////////////////////////////////////////////////////////////////

// VoteStateVersion is the version tag that prefixes the data of every vote account.
const VoteStateVersion uint32 = 2

// voteStateHeaderLength is the length of the version tag, the node pubkey, the authorized voter and the commission.
const voteStateHeaderLength = 4 + PubkeyLength + PubkeyLength + 1

// VoteState is the header of the data of a vote account that the stake views are derived from.
type VoteState struct {
	NodePubkey      Pubkey
	AuthorizedVoter Pubkey
	Commission      uint8
}

// VoteStateFromBytes parses the VoteState header from the data of a vote account. Trailing bytes are ignored.
func VoteStateFromBytes(data []byte) (voteState VoteState, err error) {
	if len(data) < voteStateHeaderLength {
		return voteState, errors.Wrapf(ErrInvalidVoteState, "vote account data too short (%d bytes)", len(data))
	}

	marshalUtil := marshalutil.New(data)
	version, err := marshalUtil.ReadUint32()
	if err != nil {
		return voteState, errors.Mark(errors.Wrap(err, "failed to read version"), ErrInvalidVoteState)
	}
	if version == 0 || version > VoteStateVersion {
		return voteState, errors.Wrapf(ErrInvalidVoteState, "unknown version %d", version)
	}

	nodePubkeyBytes, err := marshalUtil.ReadBytes(PubkeyLength)
	if err != nil {
		return voteState, errors.Mark(errors.Wrap(err, "failed to read node pubkey"), ErrInvalidVoteState)
	}
	copy(voteState.NodePubkey[:], nodePubkeyBytes)

	authorizedVoterBytes, err := marshalUtil.ReadBytes(PubkeyLength)
	if err != nil {
		return voteState, errors.Mark(errors.Wrap(err, "failed to read authorized voter"), ErrInvalidVoteState)
	}
	copy(voteState.AuthorizedVoter[:], authorizedVoterBytes)

	if voteState.Commission, err = marshalUtil.ReadByte(); err != nil {
		return voteState, errors.Mark(errors.Wrap(err, "failed to read commission"), ErrInvalidVoteState)
	}

	return voteState, nil
}

// Bytes returns the marshaled VoteState header as it is stored at the start of the vote account data.
func (v VoteState) Bytes() []byte {
	return marshalutil.New(voteStateHeaderLength).
		WriteUint32(VoteStateVersion).
		WriteBytes(v.NodePubkey.Bytes()).
		WriteBytes(v.AuthorizedVoter.Bytes()).
		WriteByte(v.Commission).
		Bytes()
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////
