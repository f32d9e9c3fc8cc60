package rule

import "solscan/internal/finding"

// SWC registry entries for the detected classes.
// https://swcregistry.io/

type SWCData struct {
	ID          string
	Title       string
	Description string
}

var SWCDataMap = map[finding.Class]*SWCData{
	finding.ClassReentrancyOrder: {
		"SWC-107",
		"Reentrancy",
		"One of the major dangers of calling external contracts is that they can take over the control flow. In the reentrancy attack (a.k.a. recursive call attack), a malicious contract calls back into the calling contract before the first invocation of the function is finished. This may cause the different invocations of the function to interact in undesirable ways.",
	},
	finding.ClassTxOriginAuth: {
		"SWC-115",
		"Authorization through tx.origin",
		"tx.origin is a global variable in Solidity which returns the address of the account that sent the transaction. Using the variable for authorization could make a contract vulnerable if an authorized account calls into a malicious contract. A call could be made to the vulnerable contract that passes the authorization check since tx.origin returns the original sender of the transaction which in this case is the authorized account.",
	},
	finding.ClassWeakRandomness: {
		"SWC-120",
		"Weak Sources of Randomness from Chain Attributes",
		"Ability to generate random numbers is very helpful in all kinds of applications. Creating a strong enough source of randomness in Ethereum is very challenging: block attributes such as timestamp, number and difficulty can be predicted or influenced by miners.",
	},
	finding.ClassUncheckedArithmetic: {
		"SWC-101",
		"Integer Overflow and Underflow",
		"An overflow/underflow happens when an arithmetic operation reaches the maximum or minimum size of a type. When unguarded arithmetic wraps around, balances and counters silently take on unintended values.",
	},
	finding.ClassMissingAccessControl: {
		"SWC-105",
		"Unprotected State Variable Modification",
		"Due to missing or insufficient access controls, any caller can modify privileged state such as the contract owner, taking over administrative capabilities.",
	},
	finding.ClassUnprotectedSelfdestruct: {
		"SWC-106",
		"Unprotected SELFDESTRUCT Instruction",
		"Due to missing or insufficient access controls, malicious parties can self-destruct the contract.",
	},
	finding.ClassUnsafeDelegatecall: {
		"SWC-112",
		"Delegatecall to Untrusted Callee",
		"Calling into untrusted contracts via delegatecall is dangerous: the callee executes in the caller's storage context and can overwrite any of its state, including ownership slots.",
	},
}
