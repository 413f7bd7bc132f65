package repocontants

const CALL_RECORDS_COLLECTION = "CallRecords"
