package models

import (
	"encoding/binary"

	"github.com/google/uuid"
)

// Namespaces for derived record keys. A record's key is computable from its
// parent identifiers alone, so callers can address a record without an index
// lookup and verify a stored row is the one its parents imply.
var (
	nsContent      = uuid.MustParse("8a9e2f10-3c44-4b6b-9d21-5f0c7a1e6b01")
	nsRating       = uuid.MustParse("c4d1b8e2-7f35-41aa-8e90-2b6d4c3f9a02")
	nsReport       = uuid.MustParse("f01a6d4c-9b27-4e58-b3c5-7d8e1f2a4b03")
	nsTokenAccount = uuid.MustParse("2b7c9e51-4d68-4f3a-a1e2-9c0d5b6f8e04")
)

// ContentKey derives the storage key for a post or reply from its namespace
// sequence number.
func ContentKey(kind string, forumID, seq uint64) uuid.UUID {
	return uuid.NewSHA1(nsContent, seqName(kind, forumID, seq))
}

// ReportKey derives the storage key for a post or reply report.
func ReportKey(kind string, forumID, seq uint64) uuid.UUID {
	return uuid.NewSHA1(nsReport, seqName(kind, forumID, seq))
}

// RatingKey derives the UserRating primary key for a (content item, voter)
// pair. At most one live row can carry it.
func RatingKey(kind string, subjectID uint64, voter uuid.UUID) uuid.UUID {
	name := make([]byte, 0, len(kind)+8+16)
	name = append(name, kind...)
	name = binary.BigEndian.AppendUint64(name, subjectID)
	name = append(name, voter[:]...)
	return uuid.NewSHA1(nsRating, name)
}

// TokenAccountKey derives the TokenAccount primary key for an (owner, mint)
// pair.
func TokenAccountKey(owner uuid.UUID, mint string) uuid.UUID {
	name := make([]byte, 0, 16+len(mint))
	name = append(name, owner[:]...)
	name = append(name, mint...)
	return uuid.NewSHA1(nsTokenAccount, name)
}

func seqName(kind string, forumID, seq uint64) []byte {
	name := make([]byte, 0, len(kind)+16)
	name = append(name, kind...)
	name = binary.BigEndian.AppendUint64(name, forumID)
	name = binary.BigEndian.AppendUint64(name, seq)
	return name
}
