package teal

// Field is the common interface over the transaction-field families: plain
// transaction fields, asset-holding fields, asset-params fields,
// app-params fields and account-params fields. Each family is one Go type
// rather than one Go type per field name: TransactionField is a struct
// carrying a kind enum plus an optional array index, and the other four
// families are plain kind enums.
type Field interface {
	FieldName() string
	MinVersion() int
}

// TxnFieldKind enumerates the nullary and indexed transaction fields. This
// is a representative majority of the real TEAL field table, enough to
// exercise every field-identity-dependent code path without enumerating
// the entire historical opcode reference.
type TxnFieldKind uint8

const (
	FieldSender TxnFieldKind = iota
	FieldFee
	FieldFirstValid
	FieldFirstValidTime
	FieldLastValid
	FieldNote
	FieldLease
	FieldReceiver
	FieldAmount
	FieldCloseRemainderTo
	FieldVotePK
	FieldSelectionPK
	FieldVoteFirst
	FieldVoteLast
	FieldVoteKeyDilution
	FieldType
	FieldTypeEnum
	FieldXferAsset
	FieldAssetAmount
	FieldAssetSender
	FieldAssetReceiver
	FieldAssetCloseTo
	FieldGroupIndex
	FieldTxID
	FieldApplicationID
	FieldOnCompletion
	FieldNumAppArgs
	FieldNumAccounts
	FieldApprovalProgram
	FieldClearStateProgram
	FieldRekeyTo
	FieldConfigAsset
	FieldConfigAssetTotal
	FieldConfigAssetDecimals
	FieldConfigAssetDefaultFrozen
	FieldConfigAssetUnitName
	FieldConfigAssetName
	FieldConfigAssetURL
	FieldConfigAssetManager
	FieldConfigAssetReserve
	FieldConfigAssetFreeze
	FieldConfigAssetClawback
	FieldFreezeAsset
	FieldFreezeAssetAccount
	FieldFreezeAssetFrozen
	FieldGlobalNumUint
	FieldGlobalNumByteSlice
	FieldLocalNumUint
	FieldLocalNumByteSlice
	FieldExtraProgramPages
	FieldNonparticipation
	FieldNumLogs
	FieldCreatedAssetID
	FieldCreatedApplicationID
	FieldLastLog
	FieldStateProofPK

	// Indexed array fields: carry a non-negative index, or -1 when the
	// index is taken from the stack at run time (the *as opcode forms).
	FieldAccounts
	FieldApplicationArgs
	FieldApplications
	FieldAssets
	FieldLogs
)

var txnFieldNames = map[TxnFieldKind]string{
	FieldSender:                   "Sender",
	FieldFee:                      "Fee",
	FieldFirstValid:               "FirstValid",
	FieldFirstValidTime:           "FirstValidTime",
	FieldLastValid:                "LastValid",
	FieldNote:                     "Note",
	FieldLease:                    "Lease",
	FieldReceiver:                 "Receiver",
	FieldAmount:                   "Amount",
	FieldCloseRemainderTo:         "CloseRemainderTo",
	FieldVotePK:                   "VotePK",
	FieldSelectionPK:              "SelectionPK",
	FieldVoteFirst:                "VoteFirst",
	FieldVoteLast:                 "VoteLast",
	FieldVoteKeyDilution:          "VoteKeyDilution",
	FieldType:                     "Type",
	FieldTypeEnum:                 "TypeEnum",
	FieldXferAsset:                "XferAsset",
	FieldAssetAmount:              "AssetAmount",
	FieldAssetSender:              "AssetSender",
	FieldAssetReceiver:            "AssetReceiver",
	FieldAssetCloseTo:             "AssetCloseTo",
	FieldGroupIndex:               "GroupIndex",
	FieldTxID:                     "TxID",
	FieldApplicationID:            "ApplicationID",
	FieldOnCompletion:             "OnCompletion",
	FieldNumAppArgs:               "NumAppArgs",
	FieldNumAccounts:              "NumAccounts",
	FieldApprovalProgram:          "ApprovalProgram",
	FieldClearStateProgram:        "ClearStateProgram",
	FieldRekeyTo:                  "RekeyTo",
	FieldConfigAsset:              "ConfigAsset",
	FieldConfigAssetTotal:         "ConfigAssetTotal",
	FieldConfigAssetDecimals:      "ConfigAssetDecimals",
	FieldConfigAssetDefaultFrozen: "ConfigAssetDefaultFrozen",
	FieldConfigAssetUnitName:      "ConfigAssetUnitName",
	FieldConfigAssetName:          "ConfigAssetName",
	FieldConfigAssetURL:           "ConfigAssetURL",
	FieldConfigAssetManager:       "ConfigAssetManager",
	FieldConfigAssetReserve:       "ConfigAssetReserve",
	FieldConfigAssetFreeze:        "ConfigAssetFreeze",
	FieldConfigAssetClawback:      "ConfigAssetClawback",
	FieldFreezeAsset:              "FreezeAsset",
	FieldFreezeAssetAccount:       "FreezeAssetAccount",
	FieldFreezeAssetFrozen:        "FreezeAssetFrozen",
	FieldGlobalNumUint:            "GlobalNumUint",
	FieldGlobalNumByteSlice:       "GlobalNumByteSlice",
	FieldLocalNumUint:             "LocalNumUint",
	FieldLocalNumByteSlice:        "LocalNumByteSlice",
	FieldExtraProgramPages:        "ExtraProgramPages",
	FieldNonparticipation:         "Nonparticipation",
	FieldNumLogs:                  "NumLogs",
	FieldCreatedAssetID:           "CreatedAssetID",
	FieldCreatedApplicationID:     "CreatedApplicationID",
	FieldLastLog:                  "LastLog",
	FieldStateProofPK:             "StateProofPK",
	FieldAccounts:                 "Accounts",
	FieldApplicationArgs:          "ApplicationArgs",
	FieldApplications:             "Applications",
	FieldAssets:                   "Assets",
	FieldLogs:                     "Logs",
}

var txnFieldByName = func() map[string]TxnFieldKind {
	m := make(map[string]TxnFieldKind, len(txnFieldNames))
	for k, v := range txnFieldNames {
		m[v] = k
	}
	return m
}()

// txnFieldMinVersion records the TEAL version each field was introduced in.
// Fields not listed default to version 1.
var txnFieldMinVersion = map[TxnFieldKind]int{
	FieldFirstValidTime:       0,
	FieldTxID:                 0,
	FieldApplicationID:        2,
	FieldOnCompletion:         2,
	FieldNumAppArgs:           2,
	FieldNumAccounts:          2,
	FieldApprovalProgram:      2,
	FieldClearStateProgram:    2,
	FieldRekeyTo:              2,
	FieldConfigAsset:          2,
	FieldConfigAssetTotal:     2,
	FieldGlobalNumUint:        3,
	FieldGlobalNumByteSlice:   3,
	FieldLocalNumUint:         3,
	FieldLocalNumByteSlice:    3,
	FieldExtraProgramPages:    4,
	FieldNonparticipation:     5,
	FieldNumLogs:              5,
	FieldCreatedAssetID:       5,
	FieldCreatedApplicationID: 5,
	FieldLastLog:              6,
	FieldStateProofPK:         6,
	FieldApplications:         3,
	FieldAssets:               3,
	FieldLogs:                 5,
}

var indexedTxnFields = map[TxnFieldKind]bool{
	FieldAccounts:        true,
	FieldApplicationArgs: true,
	FieldApplications:    true,
	FieldAssets:          true,
	FieldLogs:            true,
}

// TransactionField is the tagged variant over all transaction fields. Index
// is meaningful only for the five indexed array fields: -1 means the index
// comes from the stack at run time, any other value is the literal index.
type TransactionField struct {
	Kind  TxnFieldKind
	Index int
}

func (f TransactionField) FieldName() string { return txnFieldNames[f.Kind] }
func (f TransactionField) MinVersion() int {
	if v, ok := txnFieldMinVersion[f.Kind]; ok {
		return v
	}
	return 1
}
func (f TransactionField) IsIndexed() bool    { return indexedTxnFields[f.Kind] }

// AssetHoldingField enumerates the fields returned by asset_holding_get.
type AssetHoldingField uint8

const (
	FieldAssetBalance AssetHoldingField = iota
	FieldAssetFrozen
)

var assetHoldingNames = map[AssetHoldingField]string{
	FieldAssetBalance: "AssetBalance",
	FieldAssetFrozen:  "AssetFrozen",
}

func (f AssetHoldingField) FieldName() string { return assetHoldingNames[f] }
func (f AssetHoldingField) MinVersion() int   { return 2 }

// AssetParamsField enumerates the fields returned by asset_params_get.
type AssetParamsField uint8

const (
	FieldAssetTotal AssetParamsField = iota
	FieldAssetDecimals
	FieldAssetDefaultFrozen
	FieldAssetUnitName
	FieldAssetName
	FieldAssetURL
	FieldAssetMetadataHash
	FieldAssetManager
	FieldAssetReserve
	FieldAssetFreeze
	FieldAssetClawback
	FieldAssetCreator
)

var assetParamsNames = map[AssetParamsField]string{
	FieldAssetTotal:         "AssetTotal",
	FieldAssetDecimals:      "AssetDecimals",
	FieldAssetDefaultFrozen: "AssetDefaultFrozen",
	FieldAssetUnitName:      "AssetUnitName",
	FieldAssetName:          "AssetName",
	FieldAssetURL:           "AssetURL",
	FieldAssetMetadataHash:  "AssetMetadataHash",
	FieldAssetManager:       "AssetManager",
	FieldAssetReserve:       "AssetReserve",
	FieldAssetFreeze:        "AssetFreeze",
	FieldAssetClawback:      "AssetClawback",
	FieldAssetCreator:       "AssetCreator",
}

func (f AssetParamsField) FieldName() string { return assetParamsNames[f] }
func (f AssetParamsField) MinVersion() int    { return 2 }

// AppParamsField enumerates the fields returned by app_params_get.
type AppParamsField uint8

const (
	FieldAppApprovalProgram AppParamsField = iota
	FieldAppClearStateProgram
	FieldAppGlobalNumUint
	FieldAppGlobalNumByteSlice
	FieldAppLocalNumUint
	FieldAppLocalNumByteSlice
	FieldAppExtraProgramPages
	FieldAppCreator
	FieldAppAddress
)

var appParamsNames = map[AppParamsField]string{
	FieldAppApprovalProgram:    "AppApprovalProgram",
	FieldAppClearStateProgram:  "AppClearStateProgram",
	FieldAppGlobalNumUint:      "AppGlobalNumUint",
	FieldAppGlobalNumByteSlice: "AppGlobalNumByteSlice",
	FieldAppLocalNumUint:       "AppLocalNumUint",
	FieldAppLocalNumByteSlice:  "AppLocalNumByteSlice",
	FieldAppExtraProgramPages:  "AppExtraProgramPages",
	FieldAppCreator:            "AppCreator",
	FieldAppAddress:            "AppAddress",
}

func (f AppParamsField) FieldName() string { return appParamsNames[f] }
func (f AppParamsField) MinVersion() int    { return 5 }

// AcctParamsField enumerates the fields returned by acct_params_get.
type AcctParamsField uint8

const (
	FieldAcctBalance AcctParamsField = iota
	FieldAcctMinBalance
	FieldAcctAuthAddr
	FieldAcctTotalNumUint
	FieldAcctTotalNumByteSlice
	FieldAcctTotalExtraAppPages
	FieldAcctTotalAppsCreated
	FieldAcctTotalAppsOptedIn
	FieldAcctTotalAssetsCreated
	FieldAcctTotalAssetsHeld
	FieldAcctTotalBoxes
	FieldAcctTotalBoxBytes
)

var acctParamsNames = map[AcctParamsField]string{
	FieldAcctBalance:            "AcctBalance",
	FieldAcctMinBalance:         "AcctMinBalance",
	FieldAcctAuthAddr:           "AcctAuthAddr",
	FieldAcctTotalNumUint:       "AcctTotalNumUint",
	FieldAcctTotalNumByteSlice:  "AcctTotalNumByteSlice",
	FieldAcctTotalExtraAppPages: "AcctTotalExtraAppPages",
	FieldAcctTotalAppsCreated:   "AcctTotalAppsCreated",
	FieldAcctTotalAppsOptedIn:   "AcctTotalAppsOptedIn",
	FieldAcctTotalAssetsCreated: "AcctTotalAssetsCreated",
	FieldAcctTotalAssetsHeld:    "AcctTotalAssetsHeld",
	FieldAcctTotalBoxes:         "AcctTotalBoxes",
	FieldAcctTotalBoxBytes:      "AcctTotalBoxBytes",
}

func (f AcctParamsField) FieldName() string { return acctParamsNames[f] }
func (f AcctParamsField) MinVersion() int   { return 6 }

// parseTransactionField parses the field token of a txn/txna/txnas (and
// gtxn/itxn equivalents) instruction. useStack indicates the opcode form
// takes its array index from the stack (e.g. txnas vs txna).
func parseTransactionField(tok string, useStack bool) (TransactionField, error) {
	tok = stripSpaces(tok)
	switch {
	case hasPrefixWord(tok, "Accounts"):
		return indexedField(FieldAccounts, tok, "Accounts", useStack)
	case hasPrefixWord(tok, "ApplicationArgs"):
		return indexedField(FieldApplicationArgs, tok, "ApplicationArgs", useStack)
	case hasPrefixWord(tok, "Applications"):
		return indexedField(FieldApplications, tok, "Applications", useStack)
	case hasPrefixWord(tok, "Assets"):
		return indexedField(FieldAssets, tok, "Assets", useStack)
	case hasPrefixWord(tok, "Logs"):
		return indexedField(FieldLogs, tok, "Logs", useStack)
	}
	name := stripSpaces(tok)
	kind, ok := txnFieldByName[name]
	if !ok {
		return TransactionField{}, newCoreError("unknown transaction field: " + name)
	}
	return TransactionField{Kind: kind, Index: -2}, nil
}

func indexedField(kind TxnFieldKind, tok, prefix string, useStack bool) (TransactionField, error) {
	if useStack {
		return TransactionField{Kind: kind, Index: -1}, nil
	}
	rest := stripSpaces(tok[len(prefix):])
	idx, err := parseTealInt(rest)
	if err != nil {
		return TransactionField{}, err
	}
	return TransactionField{Kind: kind, Index: int(idx)}, nil
}

func hasPrefixWord(s, prefix string) bool {
	return len(s) >= len(prefix) && s[:len(prefix)] == prefix
}

func stripSpaces(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] != ' ' {
			out = append(out, s[i])
		}
	}
	return string(out)
}
