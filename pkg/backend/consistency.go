package backend

import (
	"github.com/zonekit/zonekit/pkg/db"
	"github.com/zonekit/zonekit/pkg/model"
	"github.com/zonekit/zonekit/pkg/record"
)

// checkConsistency enforces the cross-record invariants for one domain:
// duplicate detection, CNAME exclusivity and SOA serial monotonicity. It runs
// against the store of the ambient transaction so the snapshot it reads is the
// one the commit will see. excludeID skips the record being updated.
//
// The checks only guard active records; a record being deactivated cannot
// conflict with anything.
func checkConsistency(tx db.Store, domain string, rType model.RecordType, name, value string, excludeID uint) error {
	existing, err := tx.FindRecord(domain, string(rType), name, value)
	if err != nil {
		return model.StorageError(err)
	}
	if existing != nil && existing.ID != excludeID {
		return model.Conflict("duplicate record: an active %s record %q with this value already exists", rType, name)
	}

	if rType == model.RecordTypeCname {
		others, err := tx.ListActiveRecords(domain, name)
		if err != nil {
			return model.StorageError(err)
		}
		for _, other := range others {
			if other.ID != excludeID && other.Type != string(model.RecordTypeCname) {
				return model.Conflict("CNAME cannot coexist with other record types for name %q", name)
			}
		}
	} else {
		cname, err := tx.FindActiveCNAME(domain, name)
		if err != nil {
			return model.StorageError(err)
		}
		if cname != nil && cname.ID != excludeID {
			return model.Conflict("an active CNAME already exists for name %q", name)
		}
	}

	if rType == model.RecordTypeSoa {
		if err := checkSOASerial(tx, domain, value); err != nil {
			return err
		}
	}

	return nil
}

// checkSOASerial rejects an SOA write whose serial regresses below the serial
// currently stored for the domain.
func checkSOASerial(tx db.Store, domain, value string) error {
	newSerial, err := record.SOASerial(value)
	if err != nil {
		return err
	}

	existing, err := tx.FindActiveSOA(domain)
	if err != nil {
		return model.StorageError(err)
	}
	if existing == nil {
		return nil
	}

	existingSerial, err := record.SOASerial(existing.Value)
	if err != nil {
		// A stored SOA that no longer parses should not block writes that
		// would repair it.
		return nil
	}

	if newSerial < existingSerial {
		return model.Conflict("SOA serial %d must be >= existing serial %d", newSerial, existingSerial)
	}
	return nil
}
