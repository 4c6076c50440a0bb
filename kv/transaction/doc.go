package transaction

// The transaction package describes the commands of the transaction layer. The gRPC layer turns each transactional
// request into a Command, the scheduler decides from the command alone how to run it, and the execution engine turns
// it into reads and writes of the underlying store. This package holds the first part: the command model and what
// the scheduler needs to know about each command. Storage, scheduling and execution live elsewhere.
//
// Transactions follow the Percolator protocol. A client transaction is committed in two phases: Prewrite locks every
// key and stages its value, then Commit makes the values visible at the commit timestamp. One key is the *primary*;
// its lock (or commit record) is the point of truth for the whole transaction, and all other locks point to it.
// Pessimistic transactions lock keys early with AcquirePessimisticLock, before the values are known.
//
// Locks left behind by crashed clients are cleaned up by other transactions: CheckTxnStatus looks at the primary lock
// and rolls it back once its TTL has passed, TxnHeartBeat extends the TTL of a transaction that is still alive, and
// ScanLock/ResolveLock/ResolveLockLite commit or roll back the secondary locks once the primary is decided.
//
// Within this package, `mvcc` holds the data model (timestamps, encoded keys, mutations, locks and transaction
// status), `commands` holds the Command type with its fifteen kinds and the request intake, `metrics` holds the
// labels and collectors keyed on command kinds, and `tracker` records commands as they pass through the scheduler.
//
// ## Classification
//
// Every command answers the same questions, and the scheduler relies on nothing else:
//
// * Readonly: may it run without write latches? DeleteRange is readonly because its caller guarantees exclusivity.
// * WillWrite: the keys it must latch. Nil iff readonly.
// * Ts: the timestamp ordering the command, or zero.
// * IsSysCmd: is it issued by background lock resolution rather than a client?
// * NeedFlowControl: does it go through admission throttling? Readonly and high priority commands do not.
// * WriteBytes: an estimate of the bytes it writes, for flow control and the entry size limit.
// * Tag and PriorityTag: the metrics labels.
//
// ## Encoding keys
//
// Keys are stored in their memcomparable encoding (see util/codec), so that byte-wise order of encoded keys equals
// the order of raw keys and a key is never a prefix of another. A version of a key appends the bitwise complement of
// a timestamp in big endian, so newer versions of the same key sort first.
